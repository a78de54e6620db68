package ssw

import (
	"fmt"

	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/registry"
	"github.com/jrife/ssw/serializer"
	"github.com/jrife/ssw/storage/plugins"
	"go.uber.org/zap"
)

// Config configures Open
type Config struct {
	Logger *zap.Logger
	// Window provides the media. Defaults to an
	// in-memory window.
	Window *dom.Window
	// Serializer defaults to serializer.Default()
	Serializer serializer.Serializer
	// Options configures the default candidates
	Options plugins.Options
	// Force names the candidate to activate instead of the
	// detected one. It must have been found available.
	Force string
}

// New creates a registry loaded with the default candidates
// for config.Window. Detection has not run yet.
func New(config Config) (*registry.Registry, error) {
	if config.Window == nil {
		config.Window = dom.NewMemoryWindow()
	}

	r := registry.New(registry.Config{
		Logger:     config.Logger,
		Serializer: config.Serializer,
	})

	for _, candidate := range plugins.Plugins(config.Window, config.Options) {
		if err := r.Add(candidate); err != nil {
			return nil, fmt.Errorf("could not add candidate %s: %w", candidate.Name(), err)
		}
	}

	return r, nil
}

// Open creates a registry with the default candidates, runs
// detection and applies config.Force. The returned handle is
// nil if no candidate is available.
func Open(config Config) (*registry.Handle, error) {
	r, err := New(config)

	if err != nil {
		return nil, err
	}

	handle, err := r.Detect()

	if err != nil {
		return nil, err
	}

	if config.Force != "" {
		return r.Force(config.Force)
	}

	return handle, nil
}
