package core

import (
	"github.com/arborwake/impactindex/arena"
	"github.com/arborwake/impactindex/postings"
)

// TermPosition is one token occurrence inside a document: the term text
// and its ordinal position in the token stream, the shape a segmenter
// hands to Indexer.AddDocument.
type TermPosition struct {
	Term     string
	Position uint32
}

// Indexer owns one shard's postings accumulation: a private arena and a
// term-to-postings.List map built up by a single goroutine per shard. The
// concurrency model assigns one goroutine per shard (see engine.Engine),
// so Indexer itself does not need internal locking — only the
// shard-routing layer above it is shared across goroutines.
type Indexer struct {
	shard        uint64
	initialized  bool
	arena        *arena.Allocator
	terms        map[string]*postings.List
	numDocuments uint32
}

// Init prepares the shard's arena and term map. It must be called exactly
// once before AddDocument.
func (idx *Indexer) Init(shard uint64, arenaSlabBytes int) {
	if idx.initialized {
		panic("indexer: already initialized")
	}
	idx.initialized = true
	idx.shard = shard
	idx.arena = arena.New(arenaSlabBytes)
	idx.terms = make(map[string]*postings.List)
}

// AddDocument pushes one document's (term, position) pairs into this
// shard's postings lists, creating a new list on first sight of a term.
func (idx *Indexer) AddDocument(docID uint32, occurrences []TermPosition) {
	if !idx.initialized {
		panic("indexer: not initialized")
	}
	idx.numDocuments++
	for _, occ := range occurrences {
		list, found := idx.terms[occ.Term]
		if !found {
			list = postings.New(idx.arena)
			idx.terms[occ.Term] = list
		}
		list.PushBack(docID, occ.Position)
	}
}

// Terms returns the shard's term-to-postings map, read-only from the
// caller's perspective once indexing for this shard has stopped.
func (idx *Indexer) Terms() map[string]*postings.List {
	return idx.terms
}

// NumDocuments is how many documents this shard has accumulated.
func (idx *Indexer) NumDocuments() uint32 {
	return idx.numDocuments
}

// Shard is this indexer's shard identifier.
func (idx *Indexer) Shard() uint64 {
	return idx.shard
}
