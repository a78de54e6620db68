package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON logger writing to stderr at the
// given level ("debug", "info", "warn", "error").
func New(level string) (*zap.Logger, error) {
	atom := zap.NewAtomicLevel()

	if err := atom.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		atom,
	)), nil
}

// OrGlobal returns logger, or the global logger
// if logger is nil
func OrGlobal(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.L()
	}

	return logger
}

// Component returns a child of logger tagged with
// the component name
func Component(logger *zap.Logger, name string) *zap.Logger {
	return OrGlobal(logger).With(zap.String("component", name))
}
