package codec

import "encoding/binary"

// None is the simplest codec in the family: the payload is the decoded
// array of 32-bit integers, little-endian, back to back. It corresponds to
// §4.5.2's decoder_none passthrough and exists mainly as the baseline
// other codecs are measured against.
type None struct{}

func (None) Name() string { return "none" }

func (None) Overscan() int { return 0 }

func (None) Encode(dst []byte, src []uint32, n int) int {
	need := n * 4
	if len(dst) < need {
		return 0
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], src[i])
	}
	return need
}

func (None) Decode(dst []uint32, n int, src []byte) {
	for i := 0; i < n; i++ {
		dst[i] = binary.LittleEndian.Uint32(src[i*4:])
	}
}
