// Package ingest turns raw document text into the (term, position) pairs
// core.Indexer.AddDocument expects, using sego for Chinese-aware word
// segmentation — the concrete producer for the dataflow's first arrow,
// upstream of shard routing and postings accumulation.
package ingest

import (
	"github.com/huichen/sego"

	"github.com/arborwake/impactindex/core"
)

// Tokenizer wraps a sego.Segmenter loaded from a dictionary file. It is
// safe for concurrent use by multiple goroutines once LoadDictionary has
// returned, matching sego's own concurrency guarantee.
type Tokenizer struct {
	segmenter sego.Segmenter
}

// NewTokenizer loads dictionaryPath (a sego dictionary file, or a
// comma-separated list of them) and returns a ready Tokenizer.
func NewTokenizer(dictionaryPath string) *Tokenizer {
	t := &Tokenizer{}
	t.segmenter.LoadDictionary(dictionaryPath)
	return t
}

// Tokenize segments text and returns one core.TermPosition per token, in
// the order sego emits them. Position is the token's byte offset within
// text, the same value the teacher's segmenterWorker recorded per
// occurrence before handing it to the indexer.
func (t *Tokenizer) Tokenize(text string) []core.TermPosition {
	segments := t.segmenter.Segment([]byte(text))
	occurrences := make([]core.TermPosition, 0, len(segments))
	for _, s := range segments {
		token := s.Token().Text()
		if token == "" {
			continue
		}
		occurrences = append(occurrences, core.TermPosition{
			Term:     token,
			Position: uint32(s.Start()),
		})
	}
	return occurrences
}
