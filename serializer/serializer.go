// Package serializer converts a key/value mapping to and from
// the single string a storage medium persists.
//
// A serializer is either Ready, with a working codec, or Unready.
// A JSON serializer built without a native codec becomes Ready only
// after Init has loaded its fallback codec in the background. Init
// never waits for that load: calls issued before it completes fail
// with ErrSerializationUnavailable. Embedders that would rather not
// see that failure can wait on Ready() before using the store.
package serializer

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jrife/ssw/utils/log"
	"go.uber.org/zap"
)

var (
	// ErrSerializationUnavailable indicates that no codec is loaded yet
	ErrSerializationUnavailable = errors.New("serialization not available")
	// ErrNotAMapping indicates that a serialized string did not decode to a mapping
	ErrNotAMapping = errors.New("serialized value is not a mapping")
)

// State is the readiness of a serializer
type State int32

const (
	// Unready means no codec is loaded
	Unready State = iota
	// Ready means a codec is loaded
	Ready
)

func (state State) String() string {
	switch state {
	case Ready:
		return "ready"
	default:
		return "unready"
	}
}

// Codec encodes and decodes JSON text
type Codec interface {
	Marshal(value map[string]interface{}) (string, error)
	Unmarshal(data string) (interface{}, error)
}

// Loader produces a codec. It is run at most once, in its
// own goroutine.
type Loader func() (Codec, error)

// Serializer converts mappings to and from strings
type Serializer interface {
	// Init prepares the serializer. It must not block.
	Init()
	// Serialize encodes mapping. It returns ErrSerializationUnavailable
	// if the serializer is not Ready.
	Serialize(mapping map[string]interface{}) (string, error)
	// Unserialize decodes data. It returns ErrSerializationUnavailable
	// if the serializer is not Ready.
	Unserialize(data string) (map[string]interface{}, error)
	// State returns the current readiness
	State() State
	// Ready is closed once the serializer has nothing left to load,
	// whether or not that made it Ready.
	Ready() <-chan struct{}
}

// Config configures a JSON serializer
type Config struct {
	Logger *zap.Logger
	// Native is used right away if set
	Native Codec
	// Fallback is loaded by Init when Native is nil
	Fallback Loader
}

var _ Serializer = (*JSON)(nil)

// JSON is a Serializer producing JSON text
type JSON struct {
	logger   *zap.Logger
	fallback Loader
	codec    atomic.Value
	once     sync.Once
	ready    chan struct{}
	loadErr  atomic.Value
}

type loadedCodec struct {
	Codec
}

type loadFailure struct {
	err error
}

// New creates a JSON serializer
func New(config Config) *JSON {
	serializer := &JSON{
		logger:   log.Component(config.Logger, "serializer"),
		fallback: config.Fallback,
		ready:    make(chan struct{}),
	}

	if config.Native != nil {
		serializer.codec.Store(loadedCodec{config.Native})
		serializer.once.Do(func() {})
		close(serializer.ready)
	}

	return serializer
}

// Default returns a Ready JSON serializer using encoding/json
func Default() *JSON {
	return New(Config{Native: NativeCodec{}})
}

// Init implements Serializer.Init. Without a native codec it
// starts loading the fallback codec and returns immediately.
func (serializer *JSON) Init() {
	serializer.once.Do(func() {
		if serializer.fallback == nil {
			serializer.logger.Warn("no native codec and no fallback: serialization stays unavailable")
			close(serializer.ready)

			return
		}

		serializer.logger.Debug("loading fallback codec")

		go serializer.load()
	})
}

func (serializer *JSON) load() {
	defer close(serializer.ready)

	codec, err := serializer.fallback()

	if err != nil {
		serializer.loadErr.Store(loadFailure{err})
		serializer.logger.Error("could not load fallback codec", zap.Error(err))

		return
	}

	serializer.codec.Store(loadedCodec{codec})
	serializer.logger.Debug("fallback codec loaded")
}

// LoadErr returns the error that made the fallback load fail, if any
func (serializer *JSON) LoadErr() error {
	failure, _ := serializer.loadErr.Load().(loadFailure)

	return failure.err
}

func (serializer *JSON) current() Codec {
	codec, ok := serializer.codec.Load().(loadedCodec)

	if !ok {
		return nil
	}

	return codec.Codec
}

// State implements Serializer.State
func (serializer *JSON) State() State {
	if serializer.current() == nil {
		return Unready
	}

	return Ready
}

// Ready implements Serializer.Ready
func (serializer *JSON) Ready() <-chan struct{} {
	return serializer.ready
}

// Serialize implements Serializer.Serialize
func (serializer *JSON) Serialize(mapping map[string]interface{}) (string, error) {
	codec := serializer.current()

	if codec == nil {
		return "", ErrSerializationUnavailable
	}

	if mapping == nil {
		mapping = map[string]interface{}{}
	}

	return codec.Marshal(mapping)
}

// Unserialize implements Serializer.Unserialize
func (serializer *JSON) Unserialize(data string) (map[string]interface{}, error) {
	codec := serializer.current()

	if codec == nil {
		return nil, ErrSerializationUnavailable
	}

	value, err := codec.Unmarshal(data)

	if err != nil {
		return nil, err
	}

	mapping, ok := value.(map[string]interface{})

	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotAMapping, value)
	}

	return mapping, nil
}
