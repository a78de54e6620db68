package dom

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
)

var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage is a Storage that keeps its items
// in memory, ordered by key.
type MemoryStorage struct {
	mu    sync.RWMutex
	items *treemap.Map
}

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items: treemap.NewWithStringComparator(),
	}
}

// GetItem implements Storage.GetItem
func (storage *MemoryStorage) GetItem(key string) (string, bool, error) {
	storage.mu.RLock()
	defer storage.mu.RUnlock()

	value, ok := storage.items.Get(key)

	if !ok {
		return "", false, nil
	}

	return value.(string), true, nil
}

// SetItem implements Storage.SetItem
func (storage *MemoryStorage) SetItem(key, value string) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	storage.items.Put(key, value)

	return nil
}

// RemoveItem implements Storage.RemoveItem
func (storage *MemoryStorage) RemoveItem(key string) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	storage.items.Remove(key)

	return nil
}

// Clear implements Storage.Clear
func (storage *MemoryStorage) Clear() error {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	storage.items.Clear()

	return nil
}

// Keys implements Storage.Keys
func (storage *MemoryStorage) Keys() ([]string, error) {
	storage.mu.RLock()
	defer storage.mu.RUnlock()

	keys := make([]string, 0, storage.items.Size())

	for _, key := range storage.items.Keys() {
		keys = append(keys, key.(string))
	}

	return keys, nil
}
