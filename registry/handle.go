package registry

import (
	"github.com/jrife/ssw/storage"
)

var _ storage.Store = (*Handle)(nil)

// Handle is the public interface to the active candidate.
// A nil *Handle means no candidate is supported.
type Handle struct {
	store     storage.Store
	candidate storage.Candidate
	registry  *Registry
}

// Get implements storage.Store.Get
func (handle *Handle) Get(key string) (interface{}, bool, error) {
	return handle.store.Get(key)
}

// All implements storage.Store.All
func (handle *Handle) All() (map[string]interface{}, error) {
	return handle.store.All()
}

// Add implements storage.Store.Add
func (handle *Handle) Add(key string, value interface{}) error {
	return handle.store.Add(key, value)
}

// AddAll implements storage.Store.AddAll
func (handle *Handle) AddAll(values map[string]interface{}) error {
	return handle.store.AddAll(values)
}

// Remove implements storage.Store.Remove
func (handle *Handle) Remove(key string) error {
	return handle.store.Remove(key)
}

// Clear implements storage.Store.Clear
func (handle *Handle) Clear() error {
	return handle.store.Clear()
}

// Implementation returns the candidate this handle is bound to
func (handle *Handle) Implementation() storage.Candidate {
	return handle.candidate
}

// ForceImplementation forces the registry that published this
// handle to activate another candidate. See Registry.Force.
func (handle *Handle) ForceImplementation(name string) (*Handle, error) {
	return handle.registry.Force(name)
}
