// Package codec implements the integer compression codec family from §4.5:
// a uniform encode/decode contract with at least three variants plus the
// SIMD Elias-gamma variable-byte scheme specified in normative detail.
// Every codec here operates on 32-bit unsigned integers and decoded output
// must equal encoded input for any legal sequence, given adequate output
// padding (decoders may overscan by up to the codec's declared bound,
// never more than 4 KiB).
package codec

// Codec is the contract every integer compression scheme in this package
// implements. Encode and Decode never allocate their own error channel on
// the hot path (§7): Encode returns 0 to signal the destination was too
// small, and Decode trusts its caller to have supplied a stream it
// previously produced.
type Codec interface {
	// Name identifies the codec for the on-disk codec descriptor file.
	Name() string

	// Encode writes the encoding of src[:n] into dst and returns the
	// number of bytes written, or 0 if dst is too small to hold the
	// result (EncodingOverflow — the caller should retry with a bigger
	// buffer).
	Encode(dst []byte, src []uint32, n int) int

	// Decode reconstructs n integers from src into dst. dst must have
	// room for at least n+Overscan() elements; Decode may write that
	// many without bounds-checking past n, matching the original's fixed
	// 16-lane SIMD store.
	Decode(dst []uint32, n int, src []byte)

	// Overscan bounds, in elements, how far past n a Decode call may
	// write. Callers must pad dst accordingly. Always <= 1024 (4 KiB of
	// uint32), per §4.5's contract.
	Overscan() int
}

// ByName looks up a Codec by its on-disk descriptor name, returning false
// if name is not one this package knows — the IndexCorrupt case the
// reader must surface.
func ByName(name string) (Codec, bool) {
	switch name {
	case (None{}).Name():
		return None{}, true
	case (VarintDelta{}).Name():
		return VarintDelta{}, true
	case (Roaring{}).Name():
		return Roaring{}, true
	case (EliasGammaSIMDVB{}).Name():
		return EliasGammaSIMDVB{}, true
	default:
		return nil, false
	}
}
