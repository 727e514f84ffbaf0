package engine

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"sync/atomic"

	"github.com/arborwake/impactindex/core"
)

// writeCheckpoint durably records one document's routed occurrences before
// they reach any shard's accumulator, adapted from the teacher's
// persistentStorageIndexDocumentWorker: instead of a background goroutine
// draining a channel, the write happens inline on the ingest path, so a
// crash between here and Build can replay from Recover.
func (e *Engine) writeCheckpoint(docID uint32, occurrences []core.TermPosition) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(occurrences); err != nil {
		return err
	}
	return e.checkpoint.Set(checkpointKey(docID), buf.Bytes())
}

// Recover replays every checkpointed document, routing its occurrences to
// the owning shards the same way IndexTokens does but without writing a
// new checkpoint — the teacher's persistentStorageInitWorker, adapted to
// the term-sharded routing model. Checkpoint entries are never removed.
func (e *Engine) Recover() error {
	if e.checkpoint == nil {
		return nil
	}
	return e.checkpoint.ForEach(func(k, v []byte) error {
		docID := decodeCheckpointKey(k)
		var occurrences []core.TermPosition
		if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&occurrences); err != nil {
			return err
		}
		byShard := make(map[uint64][]core.TermPosition)
		for _, occ := range occurrences {
			shard := e.shardFor(occ.Term)
			byShard[shard] = append(byShard[shard], occ)
		}
		atomic.AddUint64(&e.numDocumentsIngested, 1)
		for shard, occs := range byShard {
			atomic.AddUint64(&e.numIndexingRequests, 1)
			e.shardChannels[shard] <- shardAddRequest{docID: docID, occurrences: occs}
		}
		return nil
	})
}

func checkpointKey(docID uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, docID)
	return b
}

func decodeCheckpointKey(k []byte) uint32 {
	return binary.BigEndian.Uint32(k)
}
