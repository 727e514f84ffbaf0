// Package postings accumulates a single term's postings list during index
// build. It is the Go counterpart of JASS's index_postings: a
// non-thread-safe, arena-backed structure that collapses repeated
// occurrences of the same document into one docid/term-frequency pair
// while recording every position.
package postings

import (
	"fmt"
	"strings"

	"github.com/arborwake/impactindex/arena"
	"github.com/arborwake/impactindex/dynarray"
	"github.com/arborwake/impactindex/types"
)

const (
	initialSize  = 4
	growthFactor = 1.5
)

// List accumulates one term's postings: three parallel dynamic arrays for
// docids, term frequencies and positions.
type List struct {
	highestDocument uint32
	highestPosition uint32

	docIDs    *dynarray.Array[uint32]
	termFreqs *dynarray.Array[uint16]
	positions *dynarray.Array[uint32]
}

// New creates an empty List backed by a.
func New(a *arena.Allocator) *List {
	return &List{
		docIDs:    dynarray.New[uint32](a, initialSize, growthFactor),
		termFreqs: dynarray.New[uint16](a, initialSize, growthFactor),
		positions: dynarray.New[uint32](a, initialSize, growthFactor),
	}
}

// PushBack records one occurrence of the term at (document, position).
// Repeated calls with the same document bump that document's term
// frequency (saturating at types.MaxTermFrequency) instead of appending a
// new docid. The caller must never go backwards: document must be >= the
// last document pushed, and if document is unchanged, position must be
// strictly greater than the last position pushed for it. Violating that
// is an InvariantViolation per the caller's contract, not something this
// hot path checks at runtime (see §7 of the design).
func (l *List) PushBack(document, position uint32) {
	if l.docIDs.Len() > 0 && document == l.highestDocument {
		tf := l.termFreqs.Back()
		if *tf < types.MaxTermFrequency {
			*tf++
		}
	} else {
		l.docIDs.PushBack(document)
		l.highestDocument = document
		l.termFreqs.PushBack(1)
	}
	l.positions.PushBack(position)
	l.highestPosition = position
}

// DocumentFrequency returns the number of distinct documents recorded.
func (l *List) DocumentFrequency() int {
	return l.docIDs.Len()
}

// HighestDocument returns the largest document id pushed so far.
func (l *List) HighestDocument() uint32 {
	return l.highestDocument
}

// DocIDsAndFrequencies materializes the list's per-document arrays as plain
// slices, in ascending docid order: the shape the quantizer's Observe/Emit
// pass and the index writer both need, as opposed to Iterator's
// position-repeated view.
func (l *List) DocIDsAndFrequencies() ([]uint32, []uint16) {
	n := l.docIDs.Len()
	docIDs := make([]uint32, 0, n)
	freqs := make([]uint16, 0, n)
	docsIt := l.docIDs.Iterator()
	freqsIt := l.termFreqs.Iterator()
	for {
		doc, ok := docsIt.Next()
		if !ok {
			break
		}
		freq, _ := freqsIt.Next()
		docIDs = append(docIDs, doc)
		freqs = append(freqs, freq)
	}
	return docIDs, freqs
}

// Posting is one (docid, term-frequency, position) tuple yielded by
// Iterator, matching the tuple index_postings::iterator::operator*()
// returns.
type Posting = types.Posting

// Iterator walks a List's postings in docid-then-position order: a
// document's term frequency is repeated across each of its stored
// positions, exactly like the original's ranged-for loop.
type Iterator struct {
	docs      *dynarray.Iterator[uint32]
	freqs     *dynarray.Iterator[uint16]
	positions *dynarray.Iterator[uint32]

	curDoc          uint32
	curFreq         uint16
	remainingInFreq uint16
	ok              bool
}

// Iterator returns a forward iterator over l.
func (l *List) Iterator() *Iterator {
	it := &Iterator{
		docs:      l.docIDs.Iterator(),
		freqs:     l.termFreqs.Iterator(),
		positions: l.positions.Iterator(),
	}
	it.advanceDoc()
	return it
}

func (it *Iterator) advanceDoc() {
	var okDoc, okFreq bool
	it.curDoc, okDoc = it.docs.Next()
	it.curFreq, okFreq = it.freqs.Next()
	it.ok = okDoc && okFreq
	it.remainingInFreq = it.curFreq
}

// Next reports the next posting and true, or the zero Posting and false
// once every position has been consumed.
func (it *Iterator) Next() (Posting, bool) {
	var zero Posting
	pos, ok := it.positions.Next()
	if !ok {
		return zero, false
	}
	if !it.ok {
		// Positions outlived docs/freqs: a programming error upstream, but
		// surface it as exhaustion rather than panicking on a hot path.
		return zero, false
	}
	p := Posting{DocID: it.curDoc, TF: it.curFreq, Pos: pos}
	it.remainingInFreq--
	if it.remainingInFreq == 0 {
		it.advanceDoc()
	}
	return p, true
}

// TextRender renders l as "<doc,tf,pos,pos,...><doc,tf,pos,...>", the exact
// format index_postings::text_render produces and that testable scenario
// S1 checks.
func (l *List) TextRender() string {
	var b strings.Builder
	it := l.Iterator()
	previousDoc := ^uint32(0)
	open := false
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if p.DocID != previousDoc {
			if open {
				b.WriteByte('>')
			}
			fmt.Fprintf(&b, "<%d,%d,%d", p.DocID, p.TF, p.Pos)
			previousDoc = p.DocID
			open = true
		} else {
			fmt.Fprintf(&b, ",%d", p.Pos)
		}
	}
	if open {
		b.WriteByte('>')
	}
	return b.String()
}

// String implements fmt.Stringer via TextRender, matching the original's
// operator<< overload.
func (l *List) String() string {
	return l.TextRender()
}
