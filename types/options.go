package types

// BuildOptions configures one index build. It is always passed explicitly
// to a constructor; nothing in this module reads or writes package-level
// mutable configuration state.
type BuildOptions struct {
	// Shards lists the shard identifiers the build should use. One
	// goroutine, arena, and accumulator set is created per shard.
	Shards []uint64

	// NumSegmenterThreads is a tokenizer thread count. Init defaults it to
	// 1; engine.New does not read it and starts no tokenizer goroutines.
	NumSegmenterThreads int

	// IndexerBufferLength is the channel buffer depth between
	// Engine.IndexTokens and each shard's accumulator goroutine.
	IndexerBufferLength int

	// ArenaSlabBytes is the initial slab size handed to each shard's
	// arena.Allocator; it doubles on exhaustion.
	ArenaSlabBytes int

	// SegmenterDictionaryPaths names sego dictionary files, in the form
	// ingest.NewTokenizer accepts. engine.New does not read it or load a
	// dictionary; the engine always takes pre-tokenized terms.
	SegmenterDictionaryPaths string

	// UseCheckpointStorage enables the bolt/kv-backed checkpoint store so
	// an interrupted build can resume without re-reading upstream input.
	UseCheckpointStorage bool

	// CheckpointStorageFolder is where the checkpoint database lives: one
	// file shared by every shard.
	CheckpointStorageFolder string

	// StorageEngine selects the checkpoint backend: "bolt" or "kv".
	StorageEngine string

	// Ranker computes document/term scores during quantization. Required.
	Ranker interface {
		IDFComponent(documentFrequency, documentsInCollection uint32) float64
		TFComponent(tf uint16) float64
		Score(docIndex uint32, tf uint16) float64
	}
}

// Init fills in defaults for zero-valued fields, mirroring the teacher's
// EngineInitOptions.Init() pattern: callers only specify what they care
// about, everything else gets a workable default.
func (o *BuildOptions) Init() {
	if len(o.Shards) == 0 {
		o.Shards = []uint64{0}
	}
	if o.NumSegmenterThreads == 0 {
		o.NumSegmenterThreads = 1
	}
	if o.IndexerBufferLength == 0 {
		o.IndexerBufferLength = 256
	}
	if o.ArenaSlabBytes == 0 {
		o.ArenaSlabBytes = 64 * 1024
	}
	if o.StorageEngine == "" {
		o.StorageEngine = "bolt"
	}
}

// RankOptions controls how a query's scored documents are ordered and
// paginated, mirroring the teacher's types.RankOptions shape.
type RankOptions struct {
	ReverseOrder bool
	OutputOffset int
	MaxOutputs   int
}

// ScoredDocument is one query result: an internal docid carrying the
// accumulated impact-derived score.
type ScoredDocument struct {
	DocID uint32
	Score float64
}

// ScoredDocuments implements sort.Interface ordered by ascending Score, the
// same shape the teacher used for types.ScoredDocuments.
type ScoredDocuments []ScoredDocument

func (s ScoredDocuments) Len() int           { return len(s) }
func (s ScoredDocuments) Less(i, j int) bool { return s[i].Score < s[j].Score }
func (s ScoredDocuments) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
