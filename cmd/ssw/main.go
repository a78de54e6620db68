//go:build !js

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jrife/ssw/internal/cli"
	"github.com/jrife/ssw/internal/config"
	"github.com/jrife/ssw/utils/log"
	"go.uber.org/zap"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// exitf flushes logger, if any, reports the failure and exits.
// Deferred calls do not run after os.Exit.
func exitf(logger *zap.Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.Sync()
	}

	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}

func main() {
	cfg, err := config.Load()

	if err != nil {
		exitf(nil, "load config: %v", err)
	}

	logger, err := log.New(cfg.LogLevel)

	if err != nil {
		exitf(nil, "create logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	if err := cli.Run(cfg, os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			exitf(logger, "%v\n\n%s", err, cli.Usage)
		}

		exitf(logger, "%v", err)
	}

	logger.Sync()
}
