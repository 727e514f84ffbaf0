// Package engine wires the postings pipeline into a concurrent build:
// callers hand in already-tokenized documents through IndexTokens, each
// term is routed to the shard that owns it by hash, and a single goroutine
// per shard owns that shard's arena and core.Indexer — the
// per-build-thread ownership model the dataflow calls for, adapted from
// the teacher's channel-per-shard worker pool. The engine runs no
// tokenizer of its own; ingest.Tokenizer is a separate front end whose
// output callers pass to IndexTokens.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/huichen/murmur"
	"github.com/rs/zerolog"

	"github.com/arborwake/impactindex/core"
	"github.com/arborwake/impactindex/ierrors"
	"github.com/arborwake/impactindex/index"
	"github.com/arborwake/impactindex/quantize"
	"github.com/arborwake/impactindex/storage"
	"github.com/arborwake/impactindex/types"
)

// shardAddRequest is one document's occurrences routed to the shard that
// owns every term it carries.
type shardAddRequest struct {
	docID       uint32
	occurrences []core.TermPosition
}

// Engine owns the build-time pipeline: one core.Indexer per shard, the
// channels that feed them, and an optional checkpoint store so an
// interrupted build can resume instead of re-reading upstream input.
type Engine struct {
	logger  zerolog.Logger
	options types.BuildOptions
	metrics *Metrics

	shardIndexers map[uint64]*core.Indexer
	shardChannels map[uint64]chan shardAddRequest
	wg            sync.WaitGroup

	checkpoint storage.Storage

	numDocumentsIngested uint64
	numIndexingRequests  uint64
	numDocumentsIndexed  uint64

	initialized bool
}

// New builds an Engine from options, starting one goroutine per shard.
// logger's zero value (zerolog.Logger{}) disables logging output.
func New(options types.BuildOptions, logger zerolog.Logger) (*Engine, error) {
	options.Init()
	if options.Ranker == nil {
		return nil, ierrors.New(ierrors.InvariantViolation, "engine: BuildOptions.Ranker is required")
	}

	e := &Engine{
		logger:        logger,
		options:       options,
		metrics:       NewMetrics(nil),
		shardIndexers: make(map[uint64]*core.Indexer, len(options.Shards)),
		shardChannels: make(map[uint64]chan shardAddRequest, len(options.Shards)),
		initialized:   true,
	}

	for _, shard := range options.Shards {
		idx := &core.Indexer{}
		idx.Init(shard, options.ArenaSlabBytes)
		e.shardIndexers[shard] = idx

		ch := make(chan shardAddRequest, options.IndexerBufferLength)
		e.shardChannels[shard] = ch
		e.wg.Add(1)
		go e.shardWorker(shard, ch)
	}

	if options.UseCheckpointStorage {
		if err := os.MkdirAll(options.CheckpointStorageFolder, 0700); err != nil {
			return nil, fmt.Errorf("engine: creating checkpoint folder: %w", err)
		}
		path := filepath.Join(options.CheckpointStorageFolder, "impactindex.checkpoint")
		cp, err := storage.Open(path, options.StorageEngine)
		if err != nil {
			return nil, fmt.Errorf("engine: opening checkpoint storage: %w", err)
		}
		e.checkpoint = cp
	}

	e.logger.Info().Int("shards", len(options.Shards)).Msg("engine initialized")
	return e, nil
}

func (e *Engine) shardWorker(shard uint64, ch chan shardAddRequest) {
	defer e.wg.Done()
	idx := e.shardIndexers[shard]
	for req := range ch {
		idx.AddDocument(req.docID, req.occurrences)
		atomic.AddUint64(&e.numDocumentsIndexed, 1)
		e.metrics.PostingsPushed.Add(float64(len(req.occurrences)))
	}
}

// shardFor hashes term to one of options.Shards by murmur hash, so every
// occurrence of a term, whether from IndexTokens or Recover, lands on the
// same shard's postings list. Build's merge does not hash; it walks every
// shard's terms.
func (e *Engine) shardFor(term string) uint64 {
	h := murmur.Murmur3([]byte(term))
	return e.options.Shards[int(h)%len(e.options.Shards)]
}

// IndexTokens adds a document that has already been tokenized — by the
// caller's own tokenizer or by ingest.Tokenizer; it is the engine's only
// ingestion path.
func (e *Engine) IndexTokens(docID uint32, occurrences []core.TermPosition) error {
	if !e.initialized {
		return ierrors.New(ierrors.InvariantViolation, "engine: not initialized")
	}

	if e.checkpoint != nil {
		if err := e.writeCheckpoint(docID, occurrences); err != nil {
			return fmt.Errorf("engine: checkpointing document %d: %w", docID, err)
		}
	}

	atomic.AddUint64(&e.numDocumentsIngested, 1)

	byShard := make(map[uint64][]core.TermPosition)
	for _, occ := range occurrences {
		shard := e.shardFor(occ.Term)
		byShard[shard] = append(byShard[shard], occ)
	}
	for shard, occs := range byShard {
		atomic.AddUint64(&e.numIndexingRequests, 1)
		e.shardChannels[shard] <- shardAddRequest{docID: docID, occurrences: occs}
	}

	e.metrics.DocumentsIngested.Inc()
	e.logger.Debug().Uint32("doc_id", docID).Int("terms", len(occurrences)).Msg("document ingested")
	return nil
}

// FlushIndex blocks until every routed occurrence has reached its shard's
// indexer, mirroring the teacher's Gosched-spin FlushIndex exactly.
func (e *Engine) FlushIndex() {
	for {
		runtime.Gosched()
		if atomic.LoadUint64(&e.numIndexingRequests) == atomic.LoadUint64(&e.numDocumentsIndexed) {
			return
		}
	}
}

// Close stops every shard worker and the checkpoint store. Call it only
// after FlushIndex (or Build, which calls FlushIndex itself).
func (e *Engine) Close() error {
	for _, ch := range e.shardChannels {
		close(ch)
	}
	e.wg.Wait()
	if e.checkpoint != nil {
		return e.checkpoint.Close()
	}
	return nil
}

// buildSpec carries the choice Build needs that isn't derivable from
// accumulated shard state: the codec/d-ness an index should be encoded
// with. Build reads only its Codec and DGap; the primary-key table is
// Build's own primaryKeys argument.
type buildSpec = index.BuildResult

// Build runs the two-pass quantizer over every shard's accumulated
// postings and serializes the result into dir per §6's on-disk layout. It
// flushes and closes the engine itself; the Engine must not be reused
// afterward. spec.Terms is ignored — Build computes it from the shards'
// accumulated postings — only spec.Codec and spec.DGap are read.
func (e *Engine) Build(dir string, primaryKeys [][]byte, spec buildSpec, documentsInCollection uint32) error {
	e.FlushIndex()
	defer e.Close()

	start := time.Now()
	q := quantize.New(e.options.Ranker, documentsInCollection)

	type termPosting struct {
		term   string
		docIDs []uint32
		freqs  []uint16
	}
	var terms []termPosting
	for _, idx := range e.shardIndexers {
		for term, list := range idx.Terms() {
			docIDs, freqs := list.DocIDsAndFrequencies()
			terms = append(terms, termPosting{term: term, docIDs: docIDs, freqs: freqs})
		}
	}

	for _, t := range terms {
		if err := q.Observe(uint32(len(t.docIDs)), t.docIDs, t.freqs); err != nil {
			return fmt.Errorf("engine: build: %w", err)
		}
	}
	q.Finalize()

	result := index.BuildResult{
		PrimaryKeys: primaryKeys,
		Codec:       spec.Codec,
		DGap:        spec.DGap,
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].term < terms[j].term })
	for _, t := range terms {
		impacts := q.EmitImpacts(uint32(len(t.docIDs)), t.docIDs, t.freqs)
		result.Terms = append(result.Terms, index.TermPostings{
			Term:    []byte(t.term),
			DocIDs:  t.docIDs,
			Impacts: impacts,
		})
		// WriteIndex writes one segment per distinct impact of a term.
		distinctImpacts := make(map[uint8]struct{})
		for _, impact := range impacts {
			distinctImpacts[impact] = struct{}{}
		}
		e.metrics.SegmentsFlushed.Add(float64(len(distinctImpacts)))
	}
	e.metrics.QuantizationSeconds.Observe(time.Since(start).Seconds())

	files, closeAll, err := index.CreateFiles(dir)
	if err != nil {
		return fmt.Errorf("engine: build: creating index files: %w", err)
	}
	writeErr := index.WriteIndex(files, result)
	closeErr := closeAll()
	if writeErr != nil {
		return fmt.Errorf("engine: build: writing index: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("engine: build: closing index files: %w", closeErr)
	}

	if info, statErr := os.Stat(filepath.Join(dir, index.PostingsFilename)); statErr == nil {
		e.metrics.PostingsBytesWritten.Add(float64(info.Size()))
	}

	e.logger.Info().
		Int("terms", len(result.Terms)).
		Dur("quantization", time.Since(start)).
		Msg("build complete")
	return nil
}
