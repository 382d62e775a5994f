// Command nvm-identify prints the information record of an NVM Express
// controller.
//
// The record is read from a snapshot file or decoded from a captured
// Identify Controller page plus the CAP and VS register values.
//
// Usage:
//
//	nvm-identify [flags]
//
// Flags:
//
//	-config string     Configuration file path
//	-snapshot string   Snapshot file (.yaml, .json, .cbor)
//	-identify string   Raw 4096-byte Identify Controller data
//	-cap uint          CAP register value (with -identify)
//	-vs uint           VS register value (with -identify)
//	-save string       Save the record as a snapshot
//	-capture string    Append capture events to this file
//	-human             Add unit conversions to the report
//	-log-level string  Log level: debug, info, warn, error
//
// Examples:
//
//	# Print a saved snapshot
//	nvm-identify -snapshot snapshots/optane.yaml
//
//	# Decode a captured identify page and keep it as a snapshot
//	nvm-identify -identify ctrl.bin -cap 0x2801_03ff -vs 0x10200 -save ctrl.cbor
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nvm-examples/nvm-go/internal/config"
	"github.com/nvm-examples/nvm-go/pkg/exutil"
	"github.com/nvm-examples/nvm-go/pkg/inspect"
	capture "github.com/nvm-examples/nvm-go/pkg/log"
	"github.com/nvm-examples/nvm-go/pkg/nvm"
	"github.com/nvm-examples/nvm-go/pkg/snapshot"
)

const programName = "nvm-identify"

// options holds the parsed command line.
type options struct {
	ConfigFile   string
	SnapshotFile string
	IdentifyFile string
	CAP          uint64
	VS           uint32
	SaveFile     string
	CaptureLog   string
	LogLevel     string
	Human        bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var opts options

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, `nvm-identify - Print NVM Express controller information

Usage:
  nvm-identify [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.ConfigFile, "config", "", "Configuration file path")
	fs.StringVar(&opts.SnapshotFile, "snapshot", "", "Snapshot file (.yaml, .json, .cbor)")
	fs.StringVar(&opts.IdentifyFile, "identify", "", "Raw 4096-byte Identify Controller data")
	exutil.UintVar(fs, &opts.CAP, "cap", 0, "CAP register value (with -identify)")
	exutil.UintVar(fs, &opts.VS, "vs", 0, "VS register value (with -identify)")
	fs.StringVar(&opts.SaveFile, "save", "", "Save the record as a snapshot")
	fs.StringVar(&opts.CaptureLog, "capture", "", "Append capture events to this file")
	fs.BoolVar(&opts.Human, "human", false, "Add unit conversions to the report")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return &opts, nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.CaptureLog != "" {
		cfg.CaptureLog = opts.CaptureLog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(stderr)

	var sink capture.Logger = capture.NewSlogAdapter(logger)
	if cfg.CaptureLog != "" {
		fileLogger, err := capture.NewFileLogger(cfg.CaptureLog)
		if err != nil {
			return fmt.Errorf("open capture log: %w", err)
		}
		defer fileLogger.Close()
		sink = capture.NewMultiLogger(sink, fileLogger)
	}
	session := capture.NewSession(programName, sink)
	logger.Debug("session started", slog.String("session", session.ID()))

	tag := exutil.RandomID()

	info, source, err := obtain(opts)
	if err != nil {
		session.LogError(tag, "obtain controller information", err)
		return err
	}
	session.LogIdentify(tag, source, info)
	logger.Info("controller information obtained",
		slog.String("source", source),
		slog.String("controller", info.String()),
	)

	f := inspect.NewFormatter()
	f.HumanReadable = opts.Human
	report := exutil.FormatControllerInfo(info, f)
	if _, err := io.WriteString(stdout, report); err != nil {
		return err
	}
	session.LogPrint(tag, len(report), opts.Human)

	if opts.SaveFile != "" {
		if err := snapshot.Save(opts.SaveFile, info); err != nil {
			session.LogError(tag, "save snapshot", err)
			return fmt.Errorf("save snapshot: %w", err)
		}
		logger.Info("snapshot saved", slog.String("path", opts.SaveFile))
	}
	return nil
}

// obtain returns the controller record selected by the flags and a
// description of where it came from.
func obtain(opts *options) (*nvm.ControllerInfo, string, error) {
	switch {
	case opts.SnapshotFile != "" && opts.IdentifyFile != "":
		return nil, "", errors.New("-snapshot and -identify are mutually exclusive")

	case opts.SnapshotFile != "":
		info, err := snapshot.Load(opts.SnapshotFile)
		if err != nil {
			return nil, "", err
		}
		return info, opts.SnapshotFile, nil

	case opts.IdentifyFile != "":
		data, err := os.ReadFile(opts.IdentifyFile)
		if err != nil {
			return nil, "", fmt.Errorf("read identify data: %w", err)
		}
		info, err := nvm.Decode(nvm.Registers{CAP: opts.CAP, VS: opts.VS}, data)
		if err != nil {
			return nil, "", err
		}
		return info, "decode:" + opts.IdentifyFile, nil

	default:
		return nil, "", errors.New("either -snapshot or -identify is required")
	}
}
