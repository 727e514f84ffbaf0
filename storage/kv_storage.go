package storage

import (
	"io"

	"github.com/cznic/kv"
)

type kvStorage struct {
	db *kv.DB
}

// openKVStorage opens the cznic/kv database at path, creating it first if
// this is the checkpoint folder's first run. cznic/kv distinguishes "open
// an existing file" from "create a new one" at the API level; a checkpoint
// store has to paper over that distinction since callers only know a
// folder, not whether a previous build left a database behind.
func openKVStorage(path string) (Storage, error) {
	db, errOpen := kv.Open(path, &kv.Options{})
	if errOpen != nil {
		var errCreate error
		db, errCreate = kv.Create(path, &kv.Options{})
		if errCreate != nil {
			return nil, errCreate
		}
	}
	return &kvStorage{db: db}, nil
}

func (s *kvStorage) Set(k, v []byte) error {
	return s.db.Set(k, v)
}

func (s *kvStorage) Get(k []byte) ([]byte, error) {
	return s.db.Get(nil, k)
}

func (s *kvStorage) Delete(k []byte) error {
	return s.db.Delete(k)
}

func (s *kvStorage) ForEach(fn func(k, v []byte) error) error {
	enum, err := s.db.SeekFirst()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	for {
		k, v, err := enum.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
}

func (s *kvStorage) Close() error {
	return s.db.Close()
}

func (s *kvStorage) WALName() string {
	return s.db.WALName()
}
