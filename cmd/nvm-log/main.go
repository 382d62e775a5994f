// Command nvm-log views and analyzes capture logs written by the example
// programs when run with -capture.
//
// Usage:
//
//	nvm-log <command> [flags] <file.nlog>
//
// Examples:
//
//	# View all events
//	nvm-log view identify.nlog
//
//	# View only parse events of one request
//	nvm-log view -kind parse -tag 0x1a2b shell.nlog
//
//	# Export to CSV
//	nvm-log export -format csv shell.nlog
//
//	# Keep one session in a new file
//	nvm-log filter -session 3f2a9c1d -o session.nlog shell.nlog
//
//	# Show statistics
//	nvm-log stats shell.nlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nvm-examples/nvm-go/cmd/nvm-log/commands"
)

const usage = `nvm-log - NVM example capture log viewer

Usage:
  nvm-log <command> [flags] <file.nlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON lines or CSV
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "nvm-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// pathArg returns the single positional log path or exits.
func pathArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `nvm-log view - View log file in human-readable format

Usage:
  nvm-log view [flags] <file.nlog>

Flags:
`)
		fs.PrintDefaults()
	}

	session := fs.String("session", "", "Filter by session ID or its 8-character prefix")
	program := fs.String("program", "", "Filter by program name")
	kind := fs.String("kind", "", "Filter by kind (identify, parse, print, error)")
	tag := fs.String("tag", "", "Filter by request tag (decimal or 0x hex)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	filter := commands.ViewFilter{Session: *session, Program: *program}

	if *kind != "" {
		k, err := commands.ParseKindFlag(*kind)
		if err != nil {
			fatal(err)
		}
		filter.Kind = &k
	}

	if *tag != "" {
		t, err := commands.ParseTagFlag(*tag)
		if err != nil {
			fatal(err)
		}
		filter.Tag = &t
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `nvm-log export - Export log file to JSON lines or CSV

Usage:
  nvm-log export [flags] <file.nlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	w := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fatal(fmt.Errorf("failed to create output file: %w", err))
		}
		defer f.Close()
		w = f
	}

	if err := commands.RunExport(path, *format, w); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `nvm-log filter - Filter log file and write to new file

Usage:
  nvm-log filter [flags] <file.nlog>

Flags:
`)
		fs.PrintDefaults()
	}

	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	fs.StringVar(&opts.Session, "session", "", "Filter by session ID or its 8-character prefix")
	fs.StringVar(&opts.Program, "program", "", "Filter by program name")
	fs.StringVar(&opts.Kind, "kind", "", "Filter by kind (identify, parse, print, error)")
	fs.StringVar(&opts.Tag, "tag", "", "Filter by request tag (decimal or 0x hex)")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunFilter(path, opts, os.Stdout); err != nil {
		fatal(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `nvm-log stats - Show statistics about the log file

Usage:
  nvm-log stats <file.nlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fatal(err)
	}
}
