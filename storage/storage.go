package storage

// Candidate is a storage medium that can be selected
type Candidate interface {
	// Name identifies the candidate in a registry
	Name() string
	// IsAvailable probes the medium. It should have no
	// observable side effects, although some media can
	// only be probed by writing to them.
	IsAvailable() bool
}

// Store is the uniform interface over every medium
type Store interface {
	// Get returns the value at key. The second return value
	// is false if the key is absent, which is distinct from
	// a key holding an empty value.
	Get(key string) (interface{}, bool, error)
	// All returns every key/value pair. The returned map
	// is a copy.
	All() (map[string]interface{}, error)
	// Add sets key to value
	Add(key string, value interface{}) error
	// AddAll merges every entry of values into the store
	AddAll(values map[string]interface{}) error
	// Remove deletes key. It has no effect if the key
	// is absent.
	Remove(key string) error
	// Clear deletes every key and tears down the medium
	Clear() error
}

// NativeBackend is a candidate whose medium stores
// key/value pairs itself
type NativeBackend interface {
	Candidate
	Store
	// Init is run every time the backend is activated
	Init() error
}

// RawBackend is a candidate whose medium stores a single
// string under a fixed name
type RawBackend interface {
	Candidate
	// Read returns the stored string, or "" if there
	// is none
	Read() (string, error)
	// Save stores s. An empty s means the stored string
	// should be dropped if the medium allows it.
	Save(s string) error
}

// Initializer is implemented by raw backends that need
// one-time setup before first use
type Initializer interface {
	SpecificInit() error
}

// Clearer is implemented by raw backends that need to
// tear down their medium after a clear
type Clearer interface {
	SpecificClear() error
}
