package dom

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

var _ BehaviorHost = (*UserDataRoot)(nil)

// UserDataRoot is a BehaviorHost whose userData elements
// persist their attributes into a Storage. Each store
// name owns the keys prefixed with "<store>/".
type UserDataRoot struct {
	storage Storage
	now     func() time.Time
}

// NewUserDataRoot creates a root element that supports the
// userData behavior, persisting into storage.
func NewUserDataRoot(storage Storage) *UserDataRoot {
	return &UserDataRoot{storage: storage, now: time.Now}
}

// SupportsBehavior implements BehaviorHost.SupportsBehavior
func (root *UserDataRoot) SupportsBehavior() bool {
	return root.storage != nil
}

// CreateUserDataElement implements BehaviorHost.CreateUserDataElement
func (root *UserDataRoot) CreateUserDataElement(tag string) (UserDataElement, error) {
	if !root.SupportsBehavior() {
		return nil, fmt.Errorf("root element does not support behaviors")
	}

	return &userDataElement{
		root:       root,
		tag:        tag,
		attributes: map[string]string{},
	}, nil
}

type userDataElement struct {
	mu         sync.Mutex
	root       *UserDataRoot
	tag        string
	attributes map[string]string
	stores     map[string]bool
}

func storePrefix(store string) string {
	return store + "/"
}

func (element *userDataElement) touch(store string) {
	if element.stores == nil {
		element.stores = map[string]bool{}
	}

	element.stores[store] = true
}

func (element *userDataElement) persistedKeys(store string) ([]string, error) {
	keys, err := element.root.storage.Keys()

	if err != nil {
		return nil, err
	}

	prefix := storePrefix(store)
	matches := []string{}

	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			matches = append(matches, key)
		}
	}

	return matches, nil
}

// Load replaces the element's attributes with the ones
// persisted under store
func (element *userDataElement) Load(store string) error {
	element.mu.Lock()
	defer element.mu.Unlock()

	element.touch(store)

	keys, err := element.persistedKeys(store)

	if err != nil {
		return fmt.Errorf("could not load store %s: %w", store, err)
	}

	attributes := map[string]string{}

	for _, key := range keys {
		value, ok, err := element.root.storage.GetItem(key)

		if err != nil {
			return fmt.Errorf("could not load store %s: %w", store, err)
		}

		if ok {
			attributes[strings.TrimPrefix(key, storePrefix(store))] = value
		}
	}

	element.attributes = attributes

	return nil
}

// Save persists the element's attributes under store
func (element *userDataElement) Save(store string) error {
	element.mu.Lock()
	defer element.mu.Unlock()

	element.touch(store)

	if err := element.discard(store); err != nil {
		return fmt.Errorf("could not save store %s: %w", store, err)
	}

	for name, value := range element.attributes {
		if err := element.root.storage.SetItem(storePrefix(store)+name, value); err != nil {
			return fmt.Errorf("could not save store %s: %w", store, err)
		}
	}

	return nil
}

func (element *userDataElement) discard(store string) error {
	keys, err := element.persistedKeys(store)

	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := element.root.storage.RemoveItem(key); err != nil {
			return err
		}
	}

	return nil
}

func (element *userDataElement) Attribute(name string) (string, bool) {
	element.mu.Lock()
	defer element.mu.Unlock()

	value, ok := element.attributes[name]

	return value, ok
}

func (element *userDataElement) SetAttribute(name, value string) {
	element.mu.Lock()
	defer element.mu.Unlock()

	element.attributes[name] = value
}

func (element *userDataElement) RemoveAttribute(name string) {
	element.mu.Lock()
	defer element.mu.Unlock()

	delete(element.attributes, name)
}

// Expire discards every store this element has loaded or
// saved when at is not in the future.
func (element *userDataElement) Expire(at time.Time) error {
	element.mu.Lock()
	defer element.mu.Unlock()

	if at.After(element.root.now()) {
		return nil
	}

	for store := range element.stores {
		if err := element.discard(store); err != nil {
			return fmt.Errorf("could not expire store %s: %w", store, err)
		}
	}

	return nil
}
