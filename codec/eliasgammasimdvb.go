package codec

import (
	"encoding/binary"
	"math/bits"
)

// lanes is the SIMD Elias-gamma-VB codec's column width: 16 lanes of 32
// bits each form one 512-bit frame. The lane count is part of the wire
// format, not an implementation detail — a portable (non-intrinsic) Go
// decoder must still produce and consume 16-wide frames.
const lanes = 16

// frameBytes is one selector word plus 16 payload words: 4 + 16*4 = 68.
const frameBytes = (lanes + 1) * 4

// eliasGammaOverscan is how many elements past n Decode may write: the
// final frame always fills all 16 lanes even when fewer than 16 real
// values remain, so decoded output can run up to lanes-1 elements past n.
const eliasGammaOverscan = lanes - 1

// EliasGammaSIMDVB is the SIMD Elias-gamma variable-byte codec from §4.5.1.
// Each frame packs one or more width-w "slices" of 16 integers across the
// 16 payload words, with a 32-bit selector recording the sequence of
// widths via Elias-gamma-style unary coding. This is a portable
// (non-intrinsic) Go implementation: the original's AVX2 column pack/unpack
// becomes a 16-iteration unrolled loop, but the on-disk frame layout is
// byte-for-byte the same, so a real SIMD implementation in another
// language could read what this writes and vice versa.
type EliasGammaSIMDVB struct{}

func (EliasGammaSIMDVB) Name() string { return "elias-gamma-simd-vb" }

func (EliasGammaSIMDVB) Overscan() int { return eliasGammaOverscan }

// ComputeSelector builds one frame's selector word from its slice widths.
// widths must be most-significant-slice-first is NOT required — order is
// oldest-slice-first, matching the order slices were packed in; a trailing
// 0 sentinel (as in index_postings_impact's C++ source) is tolerated but
// not required. Every width must be in [1, 32].
func ComputeSelector(widths []int) uint32 {
	k := len(widths)
	for k > 0 && widths[k-1] == 0 {
		k--
	}
	var value uint32
	for i := k - 1; i >= 0; i-- {
		w := uint32(widths[i])
		value = (value << w) | (1 << (w - 1))
	}
	return value
}

// SelectorWidths is ComputeSelector's inverse: given a frame's selector
// word, it recovers the slice-width sequence by repeatedly taking the
// 1-based index of the lowest set bit (find_first_set_bit) and shifting it
// off. It is the pure-Go analogue of the decoder's per-slice
// find-first-set loop, exposed standalone so it can be tested against
// ComputeSelector without a full 16-integer frame (testable property 5,
// scenario S6).
func SelectorWidths(selector uint32) []int {
	var widths []int
	for selector != 0 {
		w := bits.TrailingZeros32(selector) + 1
		widths = append(widths, w)
		selector >>= uint(w)
	}
	return widths
}

func (EliasGammaSIMDVB) Encode(dst []byte, src []uint32, n int) int {
	destPos := 0
	elements := n
	srcPos := 0

	for {
		if destPos+frameBytes > len(dst) {
			return 0
		}
		selectorOffset := destPos
		payloadOffset := destPos + 4

		var payload [lanes]uint32
		var widths []int
		remaining := 32
		cumulativeShift := 0
		fitAll := false

		for slice := 0; slice < 32; slice++ {
			maxVal := uint32(1)
			for word := 0; word < lanes; word++ {
				v := uint32(1)
				if word < elements {
					v = src[srcPos+word]
				}
				maxVal |= v
			}
			w := bits.Len32(maxVal)
			if w == 0 {
				w = 1
			}
			if w > remaining {
				break
			}

			widths = append(widths, w)
			for word := 0; word < lanes; word++ {
				var v uint32
				if word < elements {
					v = src[srcPos+word]
				}
				payload[word] |= v << uint(cumulativeShift)
			}
			cumulativeShift += w
			remaining -= w
			srcPos += lanes

			if lanes >= elements {
				fitAll = true
				break
			}
			elements -= lanes
		}

		if len(widths) == 0 {
			// A single width-1 slice always fits 32 remaining bits, so
			// this only happens if dst/src bookkeeping above is broken.
			return 0
		}

		widths[len(widths)-1] += remaining
		selector := ComputeSelector(widths)
		binary.LittleEndian.PutUint32(dst[selectorOffset:], selector)
		for word := 0; word < lanes; word++ {
			binary.LittleEndian.PutUint32(dst[payloadOffset+word*4:], payload[word])
		}
		destPos = payloadOffset + lanes*4

		if fitAll {
			return destPos
		}
	}
}

func (EliasGammaSIMDVB) Decode(dst []uint32, n int, src []byte) {
	srcPos := 0
	dstPos := 0
	var payload [lanes]uint32
	var selector uint32

	for {
		if selector == 0 {
			if srcPos >= len(src) {
				return
			}
			selector = binary.LittleEndian.Uint32(src[srcPos:])
			for word := 0; word < lanes; word++ {
				payload[word] = binary.LittleEndian.Uint32(src[srcPos+4+word*4:])
			}
			srcPos += frameBytes
		}

		w := uint32(bits.TrailingZeros32(selector) + 1)
		mask := uint32(1)<<w - 1
		for word := 0; word < lanes; word++ {
			dst[dstPos+word] = payload[word] & mask
			payload[word] >>= w
		}
		selector >>= w
		dstPos += lanes
	}
}
