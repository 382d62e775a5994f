// Command nvm-shell is an interactive shell for the NVM Express example
// helpers: request identifiers, number parsing, and controller reports
// from snapshots or captured identify data.
//
// Usage:
//
//	nvm-shell [flags]
//
// Flags:
//
//	-config string     Configuration file path
//	-snapshots string  Directory of named snapshots
//	-capture string    Append capture events to this file
//	-base int          Default base for parse
//	-human             Start with unit conversions enabled
//	-log-level string  Log level: debug, info, warn, error
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nvm-examples/nvm-go/cmd/nvm-shell/interactive"
	"github.com/nvm-examples/nvm-go/internal/config"
	capture "github.com/nvm-examples/nvm-go/pkg/log"
	"github.com/nvm-examples/nvm-go/pkg/snapshot"
)

var (
	configFile  = flag.String("config", "", "Configuration file path")
	snapshotDir = flag.String("snapshots", "", "Directory of named snapshots")
	captureLog  = flag.String("capture", "", "Append capture events to this file")
	defaultBase = flag.Int("base", -1, "Default base for parse (0 = auto)")
	human       = flag.Bool("human", false, "Start with unit conversions enabled")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *snapshotDir != "" {
		cfg.SnapshotDir = *snapshotDir
	}
	if *captureLog != "" {
		cfg.CaptureLog = *captureLog
	}
	if *defaultBase >= 0 {
		cfg.DefaultBase = *defaultBase
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var sink capture.Logger = capture.NoopLogger{}
	var fileLogger *capture.FileLogger
	if cfg.CaptureLog != "" {
		fileLogger, err = capture.NewFileLogger(cfg.CaptureLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open capture log: %v\n", err)
			os.Exit(1)
		}
		sink = fileLogger
	}

	shell, err := interactive.New(interactive.Options{
		Store:         snapshot.NewStore(cfg.SnapshotDir, snapshot.FormatYAML),
		DefaultBase:   cfg.DefaultBase,
		HumanReadable: *human,
		Session: capture.NewSession("nvm-shell", capture.NewMultiLogger(
			capture.NewSlogAdapter(cfg.NewLogger(os.Stderr)),
			sink,
		)),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	slog.SetDefault(cfg.NewLogger(shell.Stdout()))
	slog.Debug("shell started", slog.String("snapshots", cfg.SnapshotDir), slog.Int("base", cfg.DefaultBase))

	shell.Run(ctx)

	if fileLogger != nil {
		if err := fileLogger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: close capture log: %v\n", err)
		}
	}
}
