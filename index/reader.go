package index

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/edsrzf/mmap-go"
	"github.com/golang/snappy"

	"github.com/arborwake/impactindex/codec"
	"github.com/arborwake/impactindex/ierrors"
	"github.com/arborwake/impactindex/types"
)

// Reader is an opened index: vocabulary and primary keys fully decoded in
// memory (both are snappy-compressed and small relative to the postings
// blob), with the postings blob itself memory-mapped since it is the
// artifact queries actually page through and must stay byte-exact.
type Reader struct {
	terms       []types.TermRecord
	primaryKeys [][]byte
	blob        mmap.MMap
	blobFile    *os.File
	codecName   string
	dness       types.Dness
	deleted     *roaring.Bitmap
}

// OpenReader loads the four files under dir, per §4.7/§6. Any failure —
// missing file, truncated record, d-ness outside {0,1,-1} — is surfaced
// as a single ierrors.IndexCorrupt error. OpenReader does not check the
// codec name; Codex reports an unknown one as ierrors.IndexCorrupt.
func OpenReader(dir string) (*Reader, error) {
	vocabBytes, err := readCompressedFile(filepath.Join(dir, VocabularyFilename))
	if err != nil {
		return nil, ierrors.Wrap(ierrors.IndexCorrupt, "reading vocabulary file", err)
	}
	terms, err := decodeVocabulary(vocabBytes)
	if err != nil {
		return nil, ierrors.Wrap(ierrors.IndexCorrupt, "decoding vocabulary file", err)
	}

	pkBytes, err := readCompressedFile(filepath.Join(dir, PrimaryKeysFilename))
	if err != nil {
		return nil, ierrors.Wrap(ierrors.IndexCorrupt, "reading primary-key file", err)
	}
	primaryKeys, err := decodePrimaryKeys(pkBytes)
	if err != nil {
		return nil, ierrors.Wrap(ierrors.IndexCorrupt, "decoding primary-key file", err)
	}

	blobFile, err := os.Open(filepath.Join(dir, PostingsFilename))
	if err != nil {
		return nil, ierrors.Wrap(ierrors.IndexCorrupt, "opening postings blob", err)
	}
	blob, err := mapPostingsBlob(blobFile)
	if err != nil {
		blobFile.Close()
		return nil, ierrors.Wrap(ierrors.IndexCorrupt, "mapping postings blob", err)
	}

	codecName, dness, err := readCodecDescriptor(filepath.Join(dir, CodecDescFilename))
	if err != nil {
		blob.Unmap()
		blobFile.Close()
		return nil, err
	}

	deleted, err := loadDeletions(dir)
	if err != nil {
		blob.Unmap()
		blobFile.Close()
		return nil, ierrors.Wrap(ierrors.IndexCorrupt, "loading deletions bitmap", err)
	}

	return &Reader{
		terms:       terms,
		primaryKeys: primaryKeys,
		blob:        blob,
		blobFile:    blobFile,
		codecName:   codecName,
		dness:       dness,
		deleted:     deleted,
	}, nil
}

// mapPostingsBlob is split out so a zero-length postings file (an index
// with no postings at all) doesn't fail mmap.Map, which refuses to map an
// empty file.
func mapPostingsBlob(f *os.File) (mmap.MMap, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return mmap.MMap{}, nil
	}
	return mmap.Map(f, mmap.RDONLY, 0)
}

// Close unmaps the postings blob and closes its underlying file.
func (r *Reader) Close() error {
	var err error
	if len(r.blob) > 0 {
		err = r.blob.Unmap()
	}
	if cerr := r.blobFile.Close(); err == nil {
		err = cerr
	}
	return err
}

// Vocabulary returns every term record in on-disk (sorted) order.
func (r *Reader) Vocabulary() []types.TermRecord {
	return r.terms
}

// SegmentHeaders reads term's segment-header array out of the postings
// blob, per §4.7: term.impacts headers starting at term.offset.
func (r *Reader) SegmentHeaders(term types.TermRecord) []types.SegmentHeader {
	headers := make([]types.SegmentHeader, term.Impacts)
	for i := range headers {
		start := term.Offset + uint64(i)*segmentHeaderSize
		headers[i] = getSegmentHeader(r.blob[start : start+segmentHeaderSize])
	}
	return headers
}

// Payload returns the encoded bytes for one segment, resolved against the
// mapped postings blob.
func (r *Reader) Payload(h types.SegmentHeader) []byte {
	return r.blob[h.Offset:h.End]
}

// PrimaryKeys returns the primary-key table, indexed by internal docid - 1
// (internal docids are 1..N per §6).
func (r *Reader) PrimaryKeys() [][]byte {
	return r.primaryKeys
}

// Codex returns the codec and d-ness this index was built with, ready to
// drive dispatch.DecodeAndProcess over every segment.
func (r *Reader) Codex() (codec.Codec, types.Dness, error) {
	c, ok := codec.ByName(r.codecName)
	if !ok {
		return nil, 0, ierrors.New(ierrors.IndexCorrupt, fmt.Sprintf("unknown codec %q in descriptor", r.codecName))
	}
	return c, r.dness, nil
}

func readCompressedFile(path string) ([]byte, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return snappy.Decode(nil, compressed)
}

func decodeVocabulary(data []byte) ([]types.TermRecord, error) {
	r := bytes.NewReader(data)
	var terms []types.TermRecord
	for r.Len() > 0 {
		rec, err := readVocabularyRecord(r)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		terms = append(terms, rec)
	}
	return terms, nil
}

func decodePrimaryKeys(data []byte) ([][]byte, error) {
	r := bytes.NewReader(data)
	var keys [][]byte
	for r.Len() > 0 {
		key, err := readPrimaryKeyRecord(r)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func readCodecDescriptor(path string) (string, types.Dness, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, ierrors.Wrap(ierrors.IndexCorrupt, "reading codec descriptor", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		return "", 0, ierrors.New(ierrors.IndexCorrupt, "malformed codec descriptor")
	}
	dness, ok := types.ParseDness(strings.TrimSpace(lines[1]))
	if !ok {
		return "", 0, ierrors.New(ierrors.IndexCorrupt, fmt.Sprintf("unknown d-ness %q in descriptor", lines[1]))
	}
	return strings.TrimSpace(lines[0]), dness, nil
}
