//go:build !js

// Package bbolt provides a dom.Storage kept in a bbolt database, so
// session items survive the process. It is not available under
// js/wasm, where the page's own media are used instead.
package bbolt

import (
	"fmt"
	"os"
	"path/filepath"

	google_uuid "github.com/google/uuid"
	"github.com/jrife/ssw/dom"
	bolt "go.etcd.io/bbolt"
)

var _ dom.Storage = (*Storage)(nil)

// Config configures a Storage
type Config struct {
	// Path is the location of the bbolt file
	Path string
	// Bucket is the bucket holding the items. It
	// defaults to "session".
	Bucket string
}

// Storage is a dom.Storage whose items are stored
// in one bucket of a bbolt database, so they survive
// the process.
type Storage struct {
	db     *bolt.DB
	bucket []byte
}

// New opens or creates the bbolt file at config.Path
// and ensures the items bucket exists.
func New(config Config) (*Storage, error) {
	if config.Bucket == "" {
		config.Bucket = "session"
	}

	db, err := bolt.Open(config.Path, 0666, nil)

	if err != nil {
		return nil, fmt.Errorf("could not open bbolt storage at %s: %w", config.Path, err)
	}

	bucket := []byte(config.Bucket)

	if err := db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(bucket)

		return err
	}); err != nil {
		db.Close()

		return nil, fmt.Errorf("could not ensure bucket %s exists: %w", config.Bucket, err)
	}

	return &Storage{db: db, bucket: bucket}, nil
}

// NewTemp creates a Storage in a fresh file under the
// system temp directory. It is meant for tests and
// throwaway sessions. Delete removes the file.
func NewTemp() (*Storage, error) {
	return New(Config{
		Path: filepath.Join(os.TempDir(), fmt.Sprintf("ssw-%s.db", google_uuid.New().String())),
	})
}

// Bucket returns a Storage that shares this database
// but keeps its items in a different bucket.
func (storage *Storage) Bucket(name string) (*Storage, error) {
	bucket := []byte(name)

	if err := storage.db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(bucket)

		return err
	}); err != nil {
		return nil, fmt.Errorf("could not ensure bucket %s exists: %w", name, err)
	}

	return &Storage{db: storage.db, bucket: bucket}, nil
}

// Path returns the location of the bbolt file
func (storage *Storage) Path() string {
	return storage.db.Path()
}

// Close closes the underlying database
func (storage *Storage) Close() error {
	return storage.db.Close()
}

// Delete closes the database then removes its file
func (storage *Storage) Delete() error {
	path := storage.Path()

	if err := storage.Close(); err != nil {
		return fmt.Errorf("could not close storage: %w", err)
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("could not remove path %s: %w", path, err)
	}

	return nil
}

// GetItem implements dom.Storage.GetItem
func (storage *Storage) GetItem(key string) (string, bool, error) {
	var value string
	var ok bool

	err := storage.db.View(func(txn *bolt.Tx) error {
		raw := txn.Bucket(storage.bucket).Get([]byte(key))

		if raw == nil {
			return nil
		}

		value = string(raw)
		ok = true

		return nil
	})

	if err != nil {
		return "", false, fmt.Errorf("could not read item %s: %w", key, err)
	}

	return value, ok, nil
}

// SetItem implements dom.Storage.SetItem
func (storage *Storage) SetItem(key, value string) error {
	if err := storage.db.Update(func(txn *bolt.Tx) error {
		return txn.Bucket(storage.bucket).Put([]byte(key), []byte(value))
	}); err != nil {
		return fmt.Errorf("could not write item %s: %w", key, err)
	}

	return nil
}

// RemoveItem implements dom.Storage.RemoveItem
func (storage *Storage) RemoveItem(key string) error {
	if err := storage.db.Update(func(txn *bolt.Tx) error {
		return txn.Bucket(storage.bucket).Delete([]byte(key))
	}); err != nil {
		return fmt.Errorf("could not remove item %s: %w", key, err)
	}

	return nil
}

// Clear implements dom.Storage.Clear
func (storage *Storage) Clear() error {
	if err := storage.db.Update(func(txn *bolt.Tx) error {
		if err := txn.DeleteBucket(storage.bucket); err != nil {
			return err
		}

		_, err := txn.CreateBucket(storage.bucket)

		return err
	}); err != nil {
		return fmt.Errorf("could not clear bucket %s: %w", storage.bucket, err)
	}

	return nil
}

// Keys implements dom.Storage.Keys
func (storage *Storage) Keys() ([]string, error) {
	keys := []string{}

	if err := storage.db.View(func(txn *bolt.Tx) error {
		return txn.Bucket(storage.bucket).ForEach(func(key []byte, value []byte) error {
			keys = append(keys, string(key))

			return nil
		})
	}); err != nil {
		return nil, fmt.Errorf("could not list keys: %w", err)
	}

	return keys, nil
}
