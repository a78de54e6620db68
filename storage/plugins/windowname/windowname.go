// Package windowname persists to the window's name property,
// the medium of last resort.
package windowname

import (
	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/storage"
)

// Name is the candidate name
const Name = "windowname"

var _ storage.RawBackend = (*Backend)(nil)

// Backend is the window name backend
type Backend struct {
	name dom.NameProperty
}

// New creates a backend over the name property
func New(name dom.NameProperty) *Backend {
	return &Backend{name: name}
}

// Name implements storage.Candidate.Name
func (backend *Backend) Name() string {
	return Name
}

// IsAvailable implements storage.Candidate.IsAvailable
func (backend *Backend) IsAvailable() bool {
	return backend.name != nil
}

// Read implements storage.RawBackend.Read
func (backend *Backend) Read() (string, error) {
	return backend.name.Name(), nil
}

// Save implements storage.RawBackend.Save
func (backend *Backend) Save(s string) error {
	backend.name.SetName(s)

	return nil
}
