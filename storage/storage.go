package storage

import "fmt"

// Storage is the durable key/value contract behind the engine's checkpoint
// store: record occurrences as they're ingested, replay them all back on
// Recover, and clean up whichever on-disk artifacts the chosen engine
// leaves behind.
type Storage interface {
	Set(k, v []byte) error
	Get(k []byte) ([]byte, error)
	Delete(k []byte) error
	ForEach(fn func(k, v []byte) error) error
	Close() error
	WALName() string
}

// engines is the registry of checkpoint backends, keyed by the name
// types.BuildOptions.StorageEngine carries.
var engines = map[string]func(path string) (Storage, error){
	"kv":   openKVStorage,
	"bolt": openBoltStorage,
}

// RegisterEngine adds a storage engine to the registry beyond the two
// built in, so a caller embedding this module can plug in its own
// checkpoint backend without forking this package.
func RegisterEngine(name string, open func(path string) (Storage, error)) {
	engines[name] = open
}

// Open opens the checkpoint store at path with the named engine.
// types.BuildOptions.Init already defaults an empty engine name to "bolt"
// before engine.New ever calls this, so an unknown name here is a genuine
// caller error rather than something to paper over with a fallback.
func Open(path, engine string) (Storage, error) {
	open, ok := engines[engine]
	if !ok {
		return nil, fmt.Errorf("storage: unknown checkpoint engine %q", engine)
	}
	return open(path)
}
