// Package index implements §6's on-disk index layout: a vocabulary file,
// a postings blob holding packed segment headers and codec-encoded
// payloads, a primary-key file, and a small codec descriptor. Writer
// builds a fresh index from quantized postings; Reader loads one back for
// query-time dispatch.
package index

import (
	"encoding/binary"
	"io"

	"github.com/arborwake/impactindex/types"
)

// segmentHeaderSize is the packed, little-endian on-disk size of one
// types.SegmentHeader: u8 impact, u32 segment_frequency, u64 offset, u64 end.
const segmentHeaderSize = 1 + 4 + 8 + 8

func putSegmentHeader(dst []byte, h types.SegmentHeader) {
	dst[0] = h.Impact
	binary.LittleEndian.PutUint32(dst[1:5], h.SegmentFrequency)
	binary.LittleEndian.PutUint64(dst[5:13], h.Offset)
	binary.LittleEndian.PutUint64(dst[13:21], h.End)
}

func getSegmentHeader(src []byte) types.SegmentHeader {
	return types.SegmentHeader{
		Impact:           src[0],
		SegmentFrequency: binary.LittleEndian.Uint32(src[1:5]),
		Offset:           binary.LittleEndian.Uint64(src[5:13]),
		End:              binary.LittleEndian.Uint64(src[13:21]),
	}
}

// writeVocabularyRecord writes one vocabulary entry: u32 term_len,
// term_bytes[term_len], u32 impacts, u64 offset.
func writeVocabularyRecord(w io.Writer, term []byte, impacts uint32, offset uint64) error {
	var lenField [4]byte
	binary.LittleEndian.PutUint32(lenField[:], uint32(len(term)))
	if _, err := w.Write(lenField[:]); err != nil {
		return err
	}
	if _, err := w.Write(term); err != nil {
		return err
	}
	var rest [12]byte
	binary.LittleEndian.PutUint32(rest[0:4], impacts)
	binary.LittleEndian.PutUint64(rest[4:12], offset)
	_, err := w.Write(rest[:])
	return err
}

func readVocabularyRecord(r io.Reader) (types.TermRecord, error) {
	var lenField [4]byte
	if _, err := io.ReadFull(r, lenField[:]); err != nil {
		return types.TermRecord{}, err
	}
	term := make([]byte, binary.LittleEndian.Uint32(lenField[:]))
	if _, err := io.ReadFull(r, term); err != nil {
		return types.TermRecord{}, err
	}
	var rest [12]byte
	if _, err := io.ReadFull(r, rest[:]); err != nil {
		return types.TermRecord{}, err
	}
	return types.TermRecord{
		Term:    term,
		Impacts: binary.LittleEndian.Uint32(rest[0:4]),
		Offset:  binary.LittleEndian.Uint64(rest[4:12]),
	}, nil
}

// writePrimaryKeyRecord writes one primary-key entry: u32 len, bytes[len].
func writePrimaryKeyRecord(w io.Writer, key []byte) error {
	var lenField [4]byte
	binary.LittleEndian.PutUint32(lenField[:], uint32(len(key)))
	if _, err := w.Write(lenField[:]); err != nil {
		return err
	}
	_, err := w.Write(key)
	return err
}

func readPrimaryKeyRecord(r io.Reader) ([]byte, error) {
	var lenField [4]byte
	if _, err := io.ReadFull(r, lenField[:]); err != nil {
		return nil, err
	}
	key := make([]byte, binary.LittleEndian.Uint32(lenField[:]))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}
