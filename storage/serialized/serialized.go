// Package serialized adapts a RawBackend, which holds a single
// string, into a full storage.Store.
//
// The adapter keeps every value in an in-memory box. The box is
// read from the medium lazily, on first access, and only if the
// stored string looks like a serialized mapping (it starts with
// '{'); anything else starts an empty box. From then on the box
// is the source of truth and every mutation rewrites the whole
// string, so the medium never holds a partial update.
package serialized

import (
	"fmt"

	"github.com/jrife/ssw/serializer"
	"github.com/jrife/ssw/storage"
	"github.com/jrife/ssw/utils/log"
	"go.uber.org/zap"
)

var _ storage.NativeBackend = (*Adapter)(nil)

// Config configures an Adapter
type Config struct {
	Logger *zap.Logger
	// Serializer defaults to serializer.Default()
	Serializer serializer.Serializer
}

// Adapter wraps a RawBackend with a box of values
type Adapter struct {
	backend    storage.RawBackend
	serializer serializer.Serializer
	logger     *zap.Logger
	box        map[string]interface{}
}

// New creates an Adapter for backend
func New(backend storage.RawBackend, config Config) *Adapter {
	adapter := &Adapter{
		backend:    backend,
		serializer: config.Serializer,
		logger:     log.Component(config.Logger, "serialized").With(zap.String("backend", backend.Name())),
	}

	if adapter.serializer == nil {
		adapter.serializer = serializer.Default()
	}

	return adapter
}

// Backend returns the wrapped backend
func (adapter *Adapter) Backend() storage.RawBackend {
	return adapter.backend
}

// Name implements storage.Candidate.Name
func (adapter *Adapter) Name() string {
	return adapter.backend.Name()
}

// IsAvailable implements storage.Candidate.IsAvailable
func (adapter *Adapter) IsAvailable() bool {
	return adapter.backend.IsAvailable()
}

// Init initializes the serializer and runs the backend's
// specific init, if any. It does not read the box.
func (adapter *Adapter) Init() error {
	adapter.serializer.Init()

	if initializer, ok := adapter.backend.(storage.Initializer); ok {
		if err := initializer.SpecificInit(); err != nil {
			return fmt.Errorf("could not initialize %s: %w", adapter.Name(), err)
		}
	}

	return nil
}

func (adapter *Adapter) readBox() error {
	if adapter.box != nil {
		return nil
	}

	s, err := adapter.backend.Read()

	if err != nil {
		return fmt.Errorf("could not read %s: %w", adapter.Name(), err)
	}

	if s == "" || s[0] != '{' {
		adapter.logger.Debug("starting empty box", zap.Int("bytes", len(s)))
		adapter.box = map[string]interface{}{}

		return nil
	}

	box, err := adapter.serializer.Unserialize(s)

	if err != nil {
		return fmt.Errorf("could not unserialize %s: %w", adapter.Name(), err)
	}

	adapter.logger.Debug("read box", zap.Int("bytes", len(s)), zap.Int("keys", len(box)))
	adapter.box = box

	return nil
}

// saveBox persists the box. If that fails the box is
// dropped so the next access reloads what the medium
// actually holds.
func (adapter *Adapter) saveBox() error {
	s, err := adapter.serializer.Serialize(adapter.box)

	if err != nil {
		adapter.box = nil

		return fmt.Errorf("could not serialize %s: %w", adapter.Name(), err)
	}

	if err := adapter.backend.Save(s); err != nil {
		adapter.box = nil

		return fmt.Errorf("could not save %s: %w", adapter.Name(), err)
	}

	adapter.logger.Debug("saved box", zap.Int("bytes", len(s)), zap.Int("keys", len(adapter.box)))

	return nil
}

// Get implements storage.Store.Get
func (adapter *Adapter) Get(key string) (interface{}, bool, error) {
	if err := adapter.readBox(); err != nil {
		return nil, false, err
	}

	value, ok := adapter.box[key]

	return value, ok, nil
}

// All implements storage.Store.All
func (adapter *Adapter) All() (map[string]interface{}, error) {
	if err := adapter.readBox(); err != nil {
		return nil, err
	}

	all := make(map[string]interface{}, len(adapter.box))

	for key, value := range adapter.box {
		all[key] = value
	}

	return all, nil
}

// Add implements storage.Store.Add
func (adapter *Adapter) Add(key string, value interface{}) error {
	if err := adapter.readBox(); err != nil {
		return err
	}

	adapter.box[key] = value

	return adapter.saveBox()
}

// AddAll implements storage.Store.AddAll
func (adapter *Adapter) AddAll(values map[string]interface{}) error {
	if err := adapter.readBox(); err != nil {
		return err
	}

	for key, value := range values {
		adapter.box[key] = value
	}

	return adapter.saveBox()
}

// Remove implements storage.Store.Remove. Nothing is
// written if the key is absent.
func (adapter *Adapter) Remove(key string) error {
	if err := adapter.readBox(); err != nil {
		return err
	}

	if _, ok := adapter.box[key]; !ok {
		return nil
	}

	delete(adapter.box, key)

	return adapter.saveBox()
}

// Clear implements storage.Store.Clear. The medium is
// given an empty string, then the backend's specific
// clear runs, if any.
func (adapter *Adapter) Clear() error {
	adapter.box = map[string]interface{}{}

	if err := adapter.backend.Save(""); err != nil {
		adapter.box = nil

		return fmt.Errorf("could not save %s: %w", adapter.Name(), err)
	}

	if clearer, ok := adapter.backend.(storage.Clearer); ok {
		if err := clearer.SpecificClear(); err != nil {
			return fmt.Errorf("could not clear %s: %w", adapter.Name(), err)
		}
	}

	adapter.logger.Debug("cleared box")

	return nil
}
