// Package userdata persists to the legacy userData behavior.
// The box is kept in one attribute of a helper element, which
// is created and given the behavior on first activation.
package userdata

import (
	"errors"
	"time"

	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/storage"
)

// Name is the candidate name
const Name = "userdata"

var errNotInitialized = errors.New("userdata element was not created")

var (
	_ storage.RawBackend  = (*Backend)(nil)
	_ storage.Initializer = (*Backend)(nil)
	_ storage.Clearer     = (*Backend)(nil)
)

// Backend is the userData backend
type Backend struct {
	root      dom.BehaviorHost
	storeName string
	element   dom.UserDataElement
}

// New creates a backend attaching its helper element to root.
// storeName is both the element's tag name and the name of
// the persisted store and attribute.
func New(root dom.BehaviorHost, storeName string) *Backend {
	return &Backend{root: root, storeName: storeName}
}

// Name implements storage.Candidate.Name
func (backend *Backend) Name() string {
	return Name
}

// IsAvailable implements storage.Candidate.IsAvailable
func (backend *Backend) IsAvailable() bool {
	return backend.root != nil && backend.root.SupportsBehavior()
}

// SpecificInit creates the helper element
func (backend *Backend) SpecificInit() error {
	if backend.element != nil {
		return nil
	}

	element, err := backend.root.CreateUserDataElement(backend.storeName)

	if err != nil {
		return err
	}

	backend.element = element

	return nil
}

// Read implements storage.RawBackend.Read
func (backend *Backend) Read() (string, error) {
	if backend.element == nil {
		return "", errNotInitialized
	}

	if err := backend.element.Load(backend.storeName); err != nil {
		return "", err
	}

	s, _ := backend.element.Attribute(backend.storeName)

	return s, nil
}

// Save implements storage.RawBackend.Save
func (backend *Backend) Save(s string) error {
	if backend.element == nil {
		return errNotInitialized
	}

	if s == "" {
		backend.element.RemoveAttribute(backend.storeName)
	} else {
		backend.element.SetAttribute(backend.storeName, s)
	}

	return backend.element.Save(backend.storeName)
}

// SpecificClear expires the store at once
func (backend *Backend) SpecificClear() error {
	if backend.element == nil {
		return errNotInitialized
	}

	return backend.element.Expire(time.Unix(0, 0))
}
