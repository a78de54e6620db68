// Package registry selects the storage medium a page will use.
//
// A Registry holds storage candidates in priority order. Detect
// probes every candidate once, remembers which ones are available
// and activates the first available one. The active candidate is
// published through a Handle. Force swaps the active candidate for
// another one that was found available; forcing an unknown or
// unavailable candidate leaves the registry unsupported, so forcing
// can never bypass what detection found. Forcing before Detect is
// refused.
//
//	Uninitialized -> Detecting -> Active | Unsupported
//	Active -> Active | Unsupported (Force only)
//
// An unsupported registry publishes a nil *Handle. Callers must
// check for nil before using the store. A Registry is not safe for
// concurrent use.
package registry

import (
	"errors"
	"fmt"

	"github.com/jrife/ssw/serializer"
	"github.com/jrife/ssw/storage"
	"github.com/jrife/ssw/storage/serialized"
	"github.com/jrife/ssw/utils/log"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateCandidate indicates that a candidate with the same name was already added
	ErrDuplicateCandidate = errors.New("registry: duplicate candidate")
	// ErrDetected indicates that detection already ran
	ErrDetected = errors.New("registry: detection already ran")
	// ErrNotDetected indicates that Force was called before Detect
	ErrNotDetected = errors.New("registry: detection has not run")
	// ErrInvalidCandidate indicates a candidate that is neither native nor raw
	ErrInvalidCandidate = errors.New("registry: candidate is neither a native nor a raw backend")
)

// State is the lifecycle state of a registry
type State int

const (
	// Uninitialized means Detect has not run
	Uninitialized State = iota
	// Detecting means Detect is probing candidates
	Detecting
	// Active means a candidate is active
	Active
	// Unsupported means no candidate is active
	Unsupported
)

func (state State) String() string {
	switch state {
	case Uninitialized:
		return "uninitialized"
	case Detecting:
		return "detecting"
	case Active:
		return "active"
	case Unsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("state(%d)", int(state))
	}
}

// Config configures a Registry
type Config struct {
	Logger *zap.Logger
	// Serializer is shared by every raw candidate.
	// Defaults to serializer.Default().
	Serializer serializer.Serializer
}

type entry struct {
	candidate storage.Candidate
	backend   storage.NativeBackend
	available bool
}

// Registry holds the candidates and the active one
type Registry struct {
	base       *zap.Logger
	logger     *zap.Logger
	serializer serializer.Serializer
	entries    []*entry
	byName     map[string]*entry
	state      State
	active     *entry
	handle     *Handle
}

// New creates an empty registry
func New(config Config) *Registry {
	registry := &Registry{
		base:       config.Logger,
		logger:     log.Component(config.Logger, "registry"),
		serializer: config.Serializer,
		byName:     map[string]*entry{},
	}

	if registry.serializer == nil {
		registry.serializer = serializer.Default()
	}

	return registry
}

// Template turns a raw backend into a full backend
type Template func(backend storage.RawBackend) storage.NativeBackend

// Serialized is the template Add applies to raw backends: it
// wraps them in a serialized adapter sharing the registry's
// serializer.
func (registry *Registry) Serialized(backend storage.RawBackend) storage.NativeBackend {
	return serialized.New(backend, serialized.Config{
		Logger:     registry.base,
		Serializer: registry.serializer,
	})
}

// Add appends candidate to the end of the priority list. Raw
// backends are wrapped with the Serialized template; native
// backends are used as they are. Candidates must be added
// before Detect.
func (registry *Registry) Add(candidate storage.Candidate) error {
	switch backend := candidate.(type) {
	case storage.NativeBackend:
		return registry.add(candidate, backend)
	case storage.RawBackend:
		return registry.AddTemplate(registry.Serialized, backend)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidCandidate, candidate.Name())
	}
}

// AddTemplate appends backend wrapped by template
func (registry *Registry) AddTemplate(template Template, backend storage.RawBackend) error {
	if err := registry.check(backend); err != nil {
		return err
	}

	return registry.add(backend, template(backend))
}

func (registry *Registry) check(candidate storage.Candidate) error {
	if registry.state != Uninitialized {
		return ErrDetected
	}

	if _, ok := registry.byName[candidate.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCandidate, candidate.Name())
	}

	return nil
}

func (registry *Registry) add(candidate storage.Candidate, backend storage.NativeBackend) error {
	if err := registry.check(candidate); err != nil {
		return err
	}

	e := &entry{candidate: candidate, backend: backend}

	registry.entries = append(registry.entries, e)
	registry.byName[candidate.Name()] = e

	return nil
}

// Get returns the candidate called name
func (registry *Registry) Get(name string) (storage.Candidate, bool) {
	e, ok := registry.byName[name]

	if !ok {
		return nil, false
	}

	return e.candidate, true
}

// Candidates lists the candidates in priority order
func (registry *Registry) Candidates() []storage.Candidate {
	candidates := make([]storage.Candidate, len(registry.entries))

	for i, e := range registry.entries {
		candidates[i] = e.candidate
	}

	return candidates
}

// Available reports whether the candidate called name
// was found available by Detect
func (registry *Registry) Available(name string) bool {
	e, ok := registry.byName[name]

	return ok && e.available
}

// State returns the current state
func (registry *Registry) State() State {
	return registry.state
}

// Active returns the active candidate, or nil
func (registry *Registry) Active() storage.Candidate {
	if registry.active == nil {
		return nil
	}

	return registry.active.candidate
}

// Handle returns the published handle. It is nil unless
// the registry is Active.
func (registry *Registry) Handle() *Handle {
	return registry.handle
}

// Detect probes every candidate in order and activates the
// first available one. It returns a nil handle if none is
// available. Detect can only run once.
func (registry *Registry) Detect() (*Handle, error) {
	if registry.state != Uninitialized {
		return registry.handle, ErrDetected
	}

	registry.state = Detecting

	var first *entry

	for _, e := range registry.entries {
		e.available = e.candidate.IsAvailable()

		registry.logger.Debug("probed candidate", zap.String("candidate", e.candidate.Name()), zap.Bool("available", e.available))

		if e.available && first == nil {
			first = e
		}
	}

	return registry.setup(first)
}

// Force activates the candidate called name. If it does not
// exist or was not available during detection the registry
// becomes unsupported and the returned handle is nil. Force
// returns ErrNotDetected and changes nothing if Detect has
// not run.
func (registry *Registry) Force(name string) (*Handle, error) {
	if registry.state == Uninitialized {
		return nil, ErrNotDetected
	}

	e, ok := registry.byName[name]

	if !ok || !e.available {
		registry.logger.Info("refusing to force candidate", zap.String("candidate", name), zap.Bool("known", ok))

		e = nil
	}

	return registry.setup(e)
}

func (registry *Registry) setup(e *entry) (*Handle, error) {
	if e == nil {
		registry.unsupported()

		return nil, nil
	}

	if err := e.backend.Init(); err != nil {
		registry.logger.Error("could not initialize candidate", zap.String("candidate", e.candidate.Name()), zap.Error(err))
		registry.unsupported()

		return nil, err
	}

	registry.state = Active
	registry.active = e
	registry.handle = &Handle{store: e.backend, candidate: e.candidate, registry: registry}

	registry.logger.Info("activated candidate", zap.String("candidate", e.candidate.Name()))

	return registry.handle, nil
}

func (registry *Registry) unsupported() {
	registry.state = Unsupported
	registry.active = nil
	registry.handle = nil

	registry.logger.Info("no storage candidate is active")
}
