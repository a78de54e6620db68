// Package config loads the ssw command configuration from the
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/jrife/ssw/storage/plugins"
)

// Config configures the ssw command
type Config struct {
	// Path is the bbolt file holding the emulated page.
	// A temporary file is used when it is empty.
	Path string `env:"SSW_PATH"`
	// StoreName names the item, attribute or cookie
	// holding the serialized values
	StoreName string `env:"SSW_STORE_NAME" envDefault:"ssw"`
	// Media lists the media the emulated page offers
	Media []string `env:"SSW_MEDIA" envSeparator:"," envDefault:"domstorage,userdata,cookie,windowname"`
	// Force names the medium to use instead of the detected one
	Force string `env:"SSW_FORCE"`
	// NativeStorage stores each key as its own session storage item
	NativeStorage bool `env:"SSW_NATIVE_STORAGE"`
	// ScriptJSON serializes with the embedded script runtime
	// instead of encoding/json
	ScriptJSON bool `env:"SSW_SCRIPT_JSON"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"SSW_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every medium named is known
func (cfg Config) Validate() error {
	known := map[string]bool{}

	for _, name := range plugins.Names() {
		known[name] = true
	}

	for _, medium := range cfg.Media {
		if !known[strings.TrimSpace(medium)] {
			return fmt.Errorf("unknown medium %q, expected one of %s", medium, strings.Join(plugins.Names(), ", "))
		}
	}

	if cfg.Force != "" && !known[cfg.Force] {
		return fmt.Errorf("unknown medium %q to force", cfg.Force)
	}

	if cfg.StoreName == "" {
		return fmt.Errorf("store name must not be empty")
	}

	return nil
}

// Offers reports whether medium is enabled
func (cfg Config) Offers(medium string) bool {
	for _, name := range cfg.Media {
		if strings.TrimSpace(name) == medium {
			return true
		}
	}

	return false
}
