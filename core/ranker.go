package core

import (
	"sort"

	"github.com/arborwake/impactindex/types"
	"github.com/arborwake/impactindex/utils"
)

// Rank sorts a query's accumulated scored documents and slices out the
// page options asks for. Impact quantization already produced the score
// on each document (see dispatch.Sink), so unlike the teacher's
// field-scoring Ranker there is nothing left to compute here — only
// ordering and pagination, kept in the same shape as the original.
func Rank(results types.ScoredDocuments, options types.RankOptions) types.ScoredDocuments {
	if options.ReverseOrder {
		sort.Sort(sort.Reverse(results))
	} else {
		sort.Sort(results)
	}

	start := utils.MinInt(options.OutputOffset, len(results))
	end := len(results)
	if options.MaxOutputs != 0 {
		end = utils.MinInt(options.OutputOffset+options.MaxOutputs, len(results))
	}
	return results[start:end]
}
