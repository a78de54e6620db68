//go:build !js

// Package cli implements the ssw command against an emulated page.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/jrife/ssw"
	"github.com/jrife/ssw/internal/config"
	"github.com/jrife/ssw/internal/page"
	"github.com/jrife/ssw/registry"
	"github.com/jrife/ssw/serializer"
	"github.com/jrife/ssw/storage/plugins"
	"go.uber.org/zap"
)

// Usage describes the commands
const Usage = `usage: ssw <command> [arguments]

commands:
  detect             show which media are available and which is active
  get [key]          print every value, or the value at key
  add <key> <json>   set key to a JSON value (bare words are strings)
  add <json-object>  merge every entry of a JSON object
  remove <key>       delete key
  clear              delete every key and tear the medium down`

var (
	// ErrUsage indicates malformed arguments
	ErrUsage = errors.New("invalid arguments")
	// ErrUnsupported indicates that no medium is available
	ErrUnsupported = errors.New("no storage medium is available")
)

// Run runs the command in args
func Run(cfg config.Config, args []string, out io.Writer, logger *zap.Logger) error {
	if len(args) == 0 {
		return ErrUsage
	}

	p, err := page.Open(cfg, logger)

	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}

	defer p.Close()

	r, err := ssw.New(ssw.Config{
		Logger:     logger,
		Window:     p.Window,
		Serializer: newSerializer(cfg, logger),
		Options: plugins.Options{
			StoreName:     cfg.StoreName,
			NativeStorage: cfg.NativeStorage,
		},
	})

	if err != nil {
		return err
	}

	handle, err := r.Detect()

	if err != nil {
		return fmt.Errorf("detect: %w", err)
	}

	if cfg.Force != "" {
		if handle, err = r.Force(cfg.Force); err != nil {
			return fmt.Errorf("force %s: %w", cfg.Force, err)
		}
	}

	if args[0] == "detect" {
		return detect(r, handle, out)
	}

	if handle == nil {
		return ErrUnsupported
	}

	switch args[0] {
	case "get":
		return get(handle, args[1:], out)
	case "add":
		return add(handle, args[1:])
	case "remove":
		if len(args) != 2 {
			return ErrUsage
		}

		return handle.Remove(args[1])
	case "clear":
		if len(args) != 1 {
			return ErrUsage
		}

		return handle.Clear()
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

// newSerializer returns the native serializer, or the script
// serializer once its runtime has loaded. A command runs to
// completion right away, so it waits rather than racing the load.
func newSerializer(cfg config.Config, logger *zap.Logger) serializer.Serializer {
	if !cfg.ScriptJSON {
		return serializer.New(serializer.Config{Logger: logger, Native: serializer.NativeCodec{}})
	}

	s := serializer.New(serializer.Config{Logger: logger, Fallback: serializer.GojaLoader("")})
	s.Init()
	<-s.Ready()

	return s
}

func detect(r *registry.Registry, handle *registry.Handle, out io.Writer) error {
	for _, candidate := range r.Candidates() {
		status := "unavailable"

		if r.Available(candidate.Name()) {
			status = "available"
		}

		if handle != nil && handle.Implementation().Name() == candidate.Name() {
			status = "active"
		}

		fmt.Fprintf(out, "%s\t%s\n", candidate.Name(), status)
	}

	if handle == nil {
		fmt.Fprintln(out, "unsupported")
	}

	return nil
}

func get(handle *registry.Handle, args []string, out io.Writer) error {
	switch len(args) {
	case 0:
		all, err := handle.All()

		if err != nil {
			return err
		}

		keys := make([]string, 0, len(all))

		for key := range all {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			if err := printValue(out, key+"\t", all[key]); err != nil {
				return err
			}
		}

		return nil
	case 1:
		value, ok, err := handle.Get(args[0])

		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("%s is not set", args[0])
		}

		return printValue(out, "", value)
	default:
		return ErrUsage
	}
}

func printValue(out io.Writer, prefix string, value interface{}) error {
	encoded, err := json.Marshal(value)

	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s%s\n", prefix, encoded)

	return err
}

func add(handle *registry.Handle, args []string) error {
	switch len(args) {
	case 1:
		var values map[string]interface{}

		if err := json.Unmarshal([]byte(args[0]), &values); err != nil {
			return fmt.Errorf("%w: expected a JSON object: %s", ErrUsage, err)
		}

		return handle.AddAll(values)
	case 2:
		return handle.Add(args[0], parseValue(args[1]))
	default:
		return ErrUsage
	}
}

func parseValue(arg string) interface{} {
	var value interface{}

	if err := json.Unmarshal([]byte(arg), &value); err != nil {
		return arg
	}

	return value
}
