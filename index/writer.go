package index

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/golang/snappy"

	"github.com/arborwake/impactindex/codec"
	"github.com/arborwake/impactindex/types"
)

// TermPostings is one term's fully quantized posting list: a term's docids
// in ascending order with a parallel array of per-docid impacts, exactly
// the shape quantize.EmitImpacts returns.
type TermPostings struct {
	Term    []byte
	DocIDs  []uint32
	Impacts []uint8
}

// BuildResult is everything WriteIndex needs: the vocabulary in the order
// it should be written (callers sort by term bytes beforehand), the
// primary-key table in internal-docid order, and the codec/d-ness choice
// that every segment in this index is encoded with.
type BuildResult struct {
	Terms       []TermPostings
	PrimaryKeys [][]byte
	Codec       codec.Codec
	DGap        types.Dness
}

// Files are the four on-disk artifacts WriteIndex produces. Each is an
// io.Writer so tests can target an in-memory buffer instead of real files.
type Files struct {
	Vocabulary   io.Writer
	PostingsBlob io.Writer
	PrimaryKeys  io.Writer
	CodecDesc    io.Writer
}

// Filenames fixes the on-disk layout of an index directory; Reader expects
// exactly these names.
const (
	VocabularyFilename  = "vocabulary"
	PostingsFilename    = "postings"
	PrimaryKeysFilename = "primary_keys"
	CodecDescFilename   = "codec"
)

// CreateFiles opens the four index files under dir for writing, creating
// dir if needed. The returned close function closes whichever files were
// successfully opened, even on a later error.
func CreateFiles(dir string) (Files, func() error, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Files{}, nil, err
	}
	var opened []*os.File
	closeAll := func() error {
		var first error
		for _, f := range opened {
			if err := f.Close(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	open := func(name string) (*os.File, error) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		opened = append(opened, f)
		return f, nil
	}

	vocab, err := open(VocabularyFilename)
	if err != nil {
		return Files{}, closeAll, err
	}
	blob, err := open(PostingsFilename)
	if err != nil {
		return Files{}, closeAll, err
	}
	pk, err := open(PrimaryKeysFilename)
	if err != nil {
		return Files{}, closeAll, err
	}
	desc, err := open(CodecDescFilename)
	if err != nil {
		return Files{}, closeAll, err
	}

	return Files{Vocabulary: vocab, PostingsBlob: blob, PrimaryKeys: pk, CodecDesc: desc}, closeAll, nil
}

// WriteIndex serializes result into files per §6's layout: the postings
// blob is written byte-exact (no compression, since the codec contract
// depends on it), while the vocabulary and primary-key files are snappy
// compressed since nothing reads them by byte offset from outside this
// package.
func WriteIndex(files Files, result BuildResult) error {
	var blob bytes.Buffer
	var vocab bytes.Buffer

	for _, term := range result.Terms {
		groups := groupByImpact(term.DocIDs, term.Impacts)

		headers := make([]types.SegmentHeader, 0, len(groups))
		for _, g := range groups {
			payload := encodeGroup(result.Codec, result.DGap, g.docIDs)
			start := uint64(blob.Len())
			blob.Write(payload)
			headers = append(headers, types.SegmentHeader{
				Impact:           g.impact,
				SegmentFrequency: uint32(len(g.docIDs)),
				Offset:           start,
				End:              uint64(blob.Len()),
			})
		}

		headerArrayOffset := uint64(blob.Len())
		headerBytes := make([]byte, segmentHeaderSize)
		for _, h := range headers {
			putSegmentHeader(headerBytes, h)
			blob.Write(headerBytes)
		}

		if err := writeVocabularyRecord(&vocab, term.Term, uint32(len(headers)), headerArrayOffset); err != nil {
			return err
		}
	}

	var pk bytes.Buffer
	for _, key := range result.PrimaryKeys {
		if err := writePrimaryKeyRecord(&pk, key); err != nil {
			return err
		}
	}

	if _, err := files.Vocabulary.Write(snappy.Encode(nil, vocab.Bytes())); err != nil {
		return err
	}
	if _, err := files.PrimaryKeys.Write(snappy.Encode(nil, pk.Bytes())); err != nil {
		return err
	}
	if _, err := files.PostingsBlob.Write(blob.Bytes()); err != nil {
		return err
	}

	desc := fmt.Sprintf("%s\n%d\n", result.Codec.Name(), result.DGap)
	_, err := files.CodecDesc.Write([]byte(desc))
	return err
}

type impactGroup struct {
	impact uint8
	docIDs []uint32
}

// groupByImpact buckets a term's docids by their quantized impact,
// preserving ascending docid order within each bucket — free, since the
// source postings list is already docid-ascending — and orders the
// buckets themselves by descending impact, so segments land on disk
// highest-impact-first. That ordering is the impact-ordered index: it is
// what lets query-time top-k traversal stop after the first few segments
// instead of scanning a whole term's postings.
func groupByImpact(docIDs []uint32, impacts []uint8) []impactGroup {
	var order []uint8
	byImpact := map[uint8][]uint32{}
	for i, doc := range docIDs {
		impact := impacts[i]
		if _, seen := byImpact[impact]; !seen {
			order = append(order, impact)
		}
		byImpact[impact] = append(byImpact[impact], doc)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] > order[j] })
	groups := make([]impactGroup, 0, len(order))
	for _, impact := range order {
		groups = append(groups, impactGroup{impact: impact, docIDs: byImpact[impact]})
	}
	return groups
}

// encodeGroup applies the build-time d-ness choice (delta-encoding docids
// when DGap1) and then runs the codec, growing the scratch buffer and
// retrying on EncodingOverflow (Encode returning 0) per §7.
func encodeGroup(c codec.Codec, dness types.Dness, docIDs []uint32) []byte {
	src := docIDs
	if dness == types.DGap1 {
		src = make([]uint32, len(docIDs))
		var prev uint32
		for i, doc := range docIDs {
			src[i] = doc - prev
			prev = doc
		}
	}

	size := len(src)*8 + 256
	for {
		dst := make([]byte, size)
		if n := c.Encode(dst, src, len(src)); n != 0 {
			return dst[:n]
		}
		size *= 2
	}
}
