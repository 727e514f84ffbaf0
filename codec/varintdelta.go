package codec

import "encoding/binary"

// VarintDelta delta-encodes ascending docids and writes each delta as a
// LEB128 varint, adapted from the delta+uvarint scheme other postings
// implementations in the corpus (harshagw/postings' EncodePostings) use for
// their docid stream. Decode reverses the prefix sum.
type VarintDelta struct{}

func (VarintDelta) Name() string { return "varint-delta" }

// Overscan is 0: decode writes exactly n values, no SIMD-lane padding.
func (VarintDelta) Overscan() int { return 0 }

func (VarintDelta) Encode(dst []byte, src []uint32, n int) int {
	pos := 0
	var prev uint32
	for i := 0; i < n; i++ {
		delta := uint64(src[i] - prev)
		written := putUvarintBounded(dst[pos:], delta)
		if written == 0 {
			return 0
		}
		pos += written
		prev = src[i]
	}
	return pos
}

// putUvarintBounded is encoding/binary.PutUvarint, but it reports 0 instead
// of panicking when buf is too small for the encoded value.
func putUvarintBounded(buf []byte, x uint64) int {
	i := 0
	for x >= 0x80 {
		if i >= len(buf) {
			return 0
		}
		buf[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	if i >= len(buf) {
		return 0
	}
	buf[i] = byte(x)
	return i + 1
}

func (VarintDelta) Decode(dst []uint32, n int, src []byte) {
	pos := 0
	var prev uint32
	for i := 0; i < n; i++ {
		delta, width := binary.Uvarint(src[pos:])
		pos += width
		prev += uint32(delta)
		dst[i] = prev
	}
}
