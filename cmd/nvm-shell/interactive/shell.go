// Package interactive provides the interactive command-line interface
// for nvm-shell.
package interactive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nvm-examples/nvm-go/pkg/exutil"
	"github.com/nvm-examples/nvm-go/pkg/inspect"
	capture "github.com/nvm-examples/nvm-go/pkg/log"
	"github.com/nvm-examples/nvm-go/pkg/nvm"
	"github.com/nvm-examples/nvm-go/pkg/snapshot"
)

// maxIDs bounds the count accepted by the id command.
const maxIDs = 64

// Options configures a Shell.
type Options struct {
	// Session receives capture events. Nil discards them.
	Session *capture.Session

	// Store holds named snapshots for load, save and list.
	Store *snapshot.Store

	// DefaultBase is used by parse when no base is given.
	DefaultBase int

	// HumanReadable starts the shell with unit conversions enabled.
	HumanReadable bool
}

// Shell handles interactive mode for nvm-shell.
type Shell struct {
	out       io.Writer
	session   *capture.Session
	store     *snapshot.Store
	formatter *inspect.Formatter
	base      int
	nextID    func() uint16
	rl        *readline.Instance

	// current is the record shown by info.
	current *nvm.ControllerInfo
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("id"),
	readline.PcItem("parse",
		readline.PcItem("16"),
		readline.PcItem("32"),
		readline.PcItem("64"),
	),
	readline.PcItem("load"),
	readline.PcItem("decode"),
	readline.PcItem("info"),
	readline.PcItem("save"),
	readline.PcItem("list"),
	readline.PcItem("human",
		readline.PcItem("on"),
		readline.PcItem("off"),
	),
	readline.PcItem("quit"),
)

// New creates a shell reading commands from the terminal.
func New(opts Options) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nvm> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(rl.Stdout(), opts)
	s.rl = rl
	return s, nil
}

func newShell(out io.Writer, opts Options) *Shell {
	session := opts.Session
	if session == nil {
		session = capture.NewSession("nvm-shell", nil)
	}
	f := inspect.NewFormatter()
	f.HumanReadable = opts.HumanReadable

	return &Shell{
		out:       out,
		session:   session,
		store:     opts.Store,
		formatter: f,
		base:      opts.DefaultBase,
		nextID:    exutil.RandomID,
	}
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run reads and executes commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if !s.Execute(line) {
			return
		}
	}
}

// Execute runs one command line. It returns false when the shell should exit.
func (s *Shell) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "id":
		s.cmdID(args)

	case "parse", "p":
		s.cmdParse(args)

	case "load", "l":
		s.cmdLoad(args)

	case "decode":
		s.cmdDecode(args)

	case "info", "i":
		s.cmdInfo()

	case "save":
		s.cmdSave(args)

	case "list", "ls":
		s.cmdList()

	case "human":
		s.cmdHuman(args)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
NVM Shell Commands:
  Identifiers:
    id [n]                       - Generate n random request identifiers (default 1)

  Parsing:
    parse <16|32|64> <text> [base] - Parse an unsigned integer of the given width

  Controller Information:
    load <file|name>             - Load a snapshot file or a named snapshot
    decode <identify> <cap> <vs> - Decode a captured identify page and registers
    info                         - Print the current controller information
    save <file|name>             - Save the current record
    list                         - List named snapshots
    human on|off                 - Toggle unit conversions in reports

  General:
    help                         - Show this help
    quit                         - Exit shell`)
}

// cmdID handles the id command.
func (s *Shell) cmdID(args []string) {
	var n uint16 = 1
	if len(args) > 0 {
		if err := exutil.ParseU16(args[0], &n, 10); err != nil || n == 0 || n > maxIDs {
			fmt.Fprintf(s.out, "Usage: id [n]  (n between 1 and %d)\n", maxIDs)
			return
		}
	}
	for i := uint16(0); i < n; i++ {
		id := s.nextID()
		fmt.Fprintf(s.out, "0x%04x (%d)\n", id, id)
	}
}

// cmdParse handles the parse command.
func (s *Shell) cmdParse(args []string) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(s.out, "Usage: parse <16|32|64> <text> [base]")
		fmt.Fprintln(s.out, "  Example: parse 32 ffeeddcc 16")
		return
	}

	base := s.base
	if len(args) == 3 {
		b, err := exutil.ParseUint[uint8](args[2], 10)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid base: %s\n", args[2])
			return
		}
		base = int(b)
	}

	tag := s.nextID()
	text := args[1]

	var (
		value   uint64
		bitSize int
		err     error
	)
	switch args[0] {
	case "16":
		var v uint16
		bitSize, err = 16, exutil.ParseU16(text, &v, base)
		value = uint64(v)
	case "32":
		var v uint32
		bitSize, err = 32, exutil.ParseU32(text, &v, base)
		value = uint64(v)
	case "64":
		bitSize, err = 64, exutil.ParseU64(text, &value, base)
	default:
		fmt.Fprintf(s.out, "Invalid width: %s (must be 16, 32 or 64)\n", args[0])
		return
	}

	s.session.LogParse(tag, text, base, bitSize, value, err)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "u%d %d (0x%x)\n", bitSize, value, value)
}

// cmdLoad handles the load command.
func (s *Shell) cmdLoad(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: load <file|name>")
		return
	}

	tag := s.nextID()
	var (
		info *nvm.ControllerInfo
		err  error
	)
	if s.store != nil && isName(args[0]) {
		info, err = s.store.Load(args[0])
	} else {
		info, err = snapshot.Load(args[0])
	}
	if err != nil {
		s.session.LogError(tag, "load snapshot", err)
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	s.current = info
	s.session.LogIdentify(tag, args[0], info)
	fmt.Fprintf(s.out, "Loaded %s\n", info)
}

// cmdDecode handles the decode command.
func (s *Shell) cmdDecode(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.out, "Usage: decode <identify-file> <cap> <vs>")
		fmt.Fprintln(s.out, "  Example: decode ctrl.bin 0x280103ff 0x10200")
		return
	}

	var regs nvm.Registers
	if err := exutil.ParseU64(args[1], &regs.CAP, 0); err != nil {
		fmt.Fprintf(s.out, "Invalid CAP: %v\n", err)
		return
	}
	if err := exutil.ParseU32(args[2], &regs.VS, 0); err != nil {
		fmt.Fprintf(s.out, "Invalid VS: %v\n", err)
		return
	}

	tag := s.nextID()
	data, err := os.ReadFile(args[0])
	if err == nil {
		var info *nvm.ControllerInfo
		info, err = nvm.Decode(regs, data)
		if err == nil {
			s.current = info
			s.session.LogIdentify(tag, "decode:"+args[0], info)
			fmt.Fprintf(s.out, "Decoded %s\n", info)
			return
		}
	}
	s.session.LogError(tag, "decode identify data", err)
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// cmdInfo handles the info command.
func (s *Shell) cmdInfo() {
	if s.current == nil {
		fmt.Fprintln(s.out, "No controller loaded (use load or decode)")
		return
	}
	report := exutil.FormatControllerInfo(s.current, s.formatter)
	fmt.Fprint(s.out, report)
	s.session.LogPrint(s.nextID(), len(report), s.formatter.HumanReadable)
}

// cmdSave handles the save command.
func (s *Shell) cmdSave(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: save <file|name>")
		return
	}
	if s.current == nil {
		fmt.Fprintln(s.out, "No controller loaded (use load or decode)")
		return
	}

	var err error
	if s.store != nil && isName(args[0]) {
		err = s.store.Save(args[0], s.current)
	} else {
		err = snapshot.Save(args[0], s.current)
	}
	if err != nil {
		s.session.LogError(s.nextID(), "save snapshot", err)
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Saved %s\n", args[0])
}

// cmdList handles the list command.
func (s *Shell) cmdList() {
	if s.store == nil {
		fmt.Fprintln(s.out, "No snapshot directory configured")
		return
	}
	names, err := s.store.List()
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(names) == 0 {
		fmt.Fprintf(s.out, "No snapshots in %s\n", s.store.Dir())
		return
	}
	for _, name := range names {
		fmt.Fprintf(s.out, "  %s\n", name)
	}
}

// cmdHuman handles the human command.
func (s *Shell) cmdHuman(args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(s.out, "Usage: human on|off")
		return
	}
	s.formatter.HumanReadable = args[0] == "on"
	fmt.Fprintf(s.out, "Human-readable output %s\n", args[0])
}

// isName reports whether arg names a stored snapshot rather than a file.
func isName(arg string) bool {
	return filepath.Ext(arg) == "" && !strings.ContainsAny(arg, `/\`)
}
