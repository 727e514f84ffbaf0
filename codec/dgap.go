package codec

import "github.com/arborwake/impactindex/types"

// Reconstruct turns a decoded payload into absolute docids in place,
// according to the segment's d-ness (§4.5.2/§4.6): DGap1 payloads are
// successive deltas and get prefix-summed; DGap0 payloads are already
// ascending absolute docids and are left untouched; DNone payloads are not
// docid-shaped and Reconstruct is a no-op for them too, so the dispatch
// layer can call it for every segment and DNone payloads reach the sink
// unchanged.
func Reconstruct(strategy types.Dness, docIDs []uint32) {
	if strategy != types.DGap1 {
		return
	}
	var prev uint32
	for i, gap := range docIDs {
		prev += gap
		docIDs[i] = prev
	}
}
