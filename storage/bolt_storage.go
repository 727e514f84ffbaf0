package storage

import (
	"github.com/boltdb/bolt"
)

// boltBucket is the single bucket every boltStorage keeps its keys in;
// checkpoint keys are docids, unique across every shard, so one bucket in
// the engine's one checkpoint database holds them all.
var boltBucket = []byte("impactindex")

type boltStorage struct {
	db *bolt.DB
}

func openBoltStorage(path string) (Storage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &boltStorage{db: db}, nil
}

func (s *boltStorage) Set(k, v []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(k, v)
	})
}

func (s *boltStorage) Get(k []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(boltBucket).Get(k); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	return value, err
}

func (s *boltStorage) Delete(k []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete(k)
	})
}

func (s *boltStorage) ForEach(fn func(k, v []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).ForEach(fn)
	})
}

func (s *boltStorage) Close() error {
	return s.db.Close()
}

// WALName is empty for bolt: unlike cznic/kv, a bolt.DB keeps everything
// (data and freelist) in its single data file, there's no separate WAL to
// clean up after Close.
func (s *boltStorage) WALName() string {
	return ""
}
