// Package domstorage persists to the page's session storage.
//
// The default backend is a raw backend: the whole box is kept as
// one serialized item named after the store. NewNative returns the
// native variant instead, which stores every key as its own item.
package domstorage

import (
	"fmt"

	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/storage"
)

// Name is the candidate name of both variants
const Name = "domstorage"

var _ storage.RawBackend = (*Backend)(nil)

// Backend is the raw session storage backend
type Backend struct {
	storage   dom.Storage
	storeName string
}

// New creates a raw backend keeping its string
// at storeName in s
func New(s dom.Storage, storeName string) *Backend {
	return &Backend{storage: s, storeName: storeName}
}

// Name implements storage.Candidate.Name
func (backend *Backend) Name() string {
	return Name
}

// IsAvailable implements storage.Candidate.IsAvailable
func (backend *Backend) IsAvailable() bool {
	return backend.storage != nil
}

// Read implements storage.RawBackend.Read
func (backend *Backend) Read() (string, error) {
	s, _, err := backend.storage.GetItem(backend.storeName)

	return s, err
}

// Save implements storage.RawBackend.Save
func (backend *Backend) Save(s string) error {
	if s == "" {
		return backend.storage.RemoveItem(backend.storeName)
	}

	return backend.storage.SetItem(backend.storeName, s)
}

var _ storage.NativeBackend = (*NativeBackend)(nil)

// NativeBackend exposes the session storage directly. Values
// are stored as their string form, so Get always returns
// strings, and Clear empties the whole storage area.
type NativeBackend struct {
	storage dom.Storage
}

// NewNative creates a native backend over s
func NewNative(s dom.Storage) *NativeBackend {
	return &NativeBackend{storage: s}
}

// Name implements storage.Candidate.Name
func (backend *NativeBackend) Name() string {
	return Name
}

// IsAvailable implements storage.Candidate.IsAvailable
func (backend *NativeBackend) IsAvailable() bool {
	return backend.storage != nil
}

// Init implements storage.NativeBackend.Init
func (backend *NativeBackend) Init() error {
	return nil
}

// Get implements storage.Store.Get
func (backend *NativeBackend) Get(key string) (interface{}, bool, error) {
	value, ok, err := backend.storage.GetItem(key)

	if err != nil || !ok {
		return nil, false, err
	}

	return value, true, nil
}

// All implements storage.Store.All
func (backend *NativeBackend) All() (map[string]interface{}, error) {
	keys, err := backend.storage.Keys()

	if err != nil {
		return nil, err
	}

	all := make(map[string]interface{}, len(keys))

	for _, key := range keys {
		value, ok, err := backend.storage.GetItem(key)

		if err != nil {
			return nil, err
		}

		if ok {
			all[key] = value
		}
	}

	return all, nil
}

// Add implements storage.Store.Add
func (backend *NativeBackend) Add(key string, value interface{}) error {
	return backend.storage.SetItem(key, stringify(value))
}

// AddAll implements storage.Store.AddAll
func (backend *NativeBackend) AddAll(values map[string]interface{}) error {
	for key, value := range values {
		if err := backend.Add(key, value); err != nil {
			return err
		}
	}

	return nil
}

// Remove implements storage.Store.Remove
func (backend *NativeBackend) Remove(key string) error {
	return backend.storage.RemoveItem(key)
}

// Clear implements storage.Store.Clear
func (backend *NativeBackend) Clear() error {
	return backend.storage.Clear()
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}
