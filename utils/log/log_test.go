package log_test

import (
	"testing"

	"github.com/jrife/ssw/utils/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := log.New("debug")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}

	if _, err := log.New("loud"); err == nil {
		t.Fatalf("expected an invalid level to fail")
	}
}

func TestOrGlobal(t *testing.T) {
	if log.OrGlobal(nil) != zap.L() {
		t.Fatalf("expected the global logger")
	}

	logger := zap.NewNop()

	if log.OrGlobal(logger) != logger {
		t.Fatalf("expected the given logger")
	}
}
