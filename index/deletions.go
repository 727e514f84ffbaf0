package index

import (
	"os"
	"path/filepath"

	"github.com/RoaringBitmap/roaring"
)

// DeletionsFilename holds a Roaring bitmap of internal docids that have
// been tombstoned since the index was built. Deletions are a mutation
// layered on top of an otherwise frozen, immutable index snapshot (§3's
// "created once at build, frozen" lifecycle): rather than rewriting the
// postings blob, a deleted docid is marked here and consulted at
// primary-key iteration and query time, exactly like a live search
// engine's segment-level tombstone bitmap.
const DeletionsFilename = "deletions"

// WriteDeletions serializes deleted to dir's deletions file, overwriting
// any existing one. A nil or empty bitmap still produces a valid
// (empty) file, so a freshly built index round-trips through
// OpenReader with no live tombstones.
func WriteDeletions(dir string, deleted *roaring.Bitmap) error {
	if deleted == nil {
		deleted = roaring.New()
	}
	f, err := os.Create(filepath.Join(dir, DeletionsFilename))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = deleted.WriteTo(f)
	return err
}

// loadDeletions reads dir's deletions file if present. A missing file is
// not an error — most indexes never have one — and yields an empty
// bitmap so IsDeleted always has something to consult.
func loadDeletions(dir string) (*roaring.Bitmap, error) {
	data, err := os.ReadFile(filepath.Join(dir, DeletionsFilename))
	if os.IsNotExist(err) {
		return roaring.New(), nil
	}
	if err != nil {
		return nil, err
	}
	bm := roaring.New()
	if len(data) == 0 {
		return bm, nil
	}
	if _, err := bm.FromBuffer(data); err != nil {
		return nil, err
	}
	return bm, nil
}

// IsDeleted reports whether docID has been tombstoned.
func (r *Reader) IsDeleted(docID uint32) bool {
	return r.deleted.Contains(docID)
}

// MarkDeleted tombstones docID in memory. Callers persist the change with
// WriteDeletions(dir, r.Deletions()) to make it survive a reopen.
func (r *Reader) MarkDeleted(docID uint32) {
	r.deleted.Add(docID)
}

// Deletions returns the reader's live tombstone bitmap.
func (r *Reader) Deletions() *roaring.Bitmap {
	return r.deleted
}

// EachLivePrimaryKey iterates the primary-key table in internal-docid
// order (1..N), consulting the deleted-document bitmap and skipping any
// docid it contains, per SPEC_FULL.md's deleted-document bitmap
// component.
func (r *Reader) EachLivePrimaryKey(fn func(docID uint32, key []byte)) {
	for i, key := range r.primaryKeys {
		docID := uint32(i + 1)
		if r.deleted.Contains(docID) {
			continue
		}
		fn(docID, key)
	}
}
