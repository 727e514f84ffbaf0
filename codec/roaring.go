package codec

import (
	"encoding/binary"

	"github.com/RoaringBitmap/roaring"
)

// Roaring serializes a docid run as a Roaring bitmap rather than a flat
// array, trading a larger constant-factor header for much better
// compression on dense or clustered docid sets. It is the third codec
// variant §4.5 asks for beyond the SIMD Elias-gamma-VB scheme, grounded on
// the RoaringBitmap-backed posting lists used elsewhere in the corpus
// (harshagw/postings' DecodePostingsBitmap, KittClouds' CompressedGramPostings).
type Roaring struct{}

func (Roaring) Name() string { return "roaring" }

// Overscan is 0: the bitmap's cardinality is always known exactly, so
// Decode writes exactly n values.
func (Roaring) Overscan() int { return 0 }

func (Roaring) Encode(dst []byte, src []uint32, n int) int {
	bm := roaring.New()
	for i := 0; i < n; i++ {
		bm.Add(src[i])
	}
	size := bm.GetSerializedSizeInBytes()
	if uint64(len(dst)) < 4+size {
		return 0
	}
	binary.LittleEndian.PutUint32(dst, uint32(size))
	w := &sliceWriter{buf: dst[4:]}
	written, err := bm.WriteTo(w)
	if err != nil || uint64(written) != size {
		return 0
	}
	return int(4 + size)
}

func (Roaring) Decode(dst []uint32, n int, src []byte) {
	bm := roaring.New()
	size := binary.LittleEndian.Uint32(src)
	_, _ = bm.FromBuffer(src[4 : 4+int(size)])
	i := 0
	it := bm.Iterator()
	for it.HasNext() && i < n {
		dst[i] = it.Next()
		i++
	}
}

// sliceWriter adapts a fixed []byte to io.Writer without extra allocation,
// since roaring.Bitmap.WriteTo wants an io.Writer. It tracks how much of
// buf has been filled so repeated Write calls append rather than overwrite.
type sliceWriter struct {
	buf    []byte
	filled int
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	n := copy(w.buf[w.filled:], p)
	w.filled += n
	return n, nil
}
