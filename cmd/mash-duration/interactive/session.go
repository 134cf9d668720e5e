// Package interactive provides the interactive calculator of mash-duration.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/mash-protocol/duration-go/cmd/mash-duration/commands"
	"github.com/mash-protocol/duration-go/pkg/duration"
)

// lastResult names the previous result in expressions.
const lastResult = "_"

// ErrUsage is returned for a command with the wrong arguments.
var ErrUsage = errors.New("usage")

// Session evaluates calculator commands one line at a time.
// It is not safe for concurrent use.
type Session struct {
	cfg    commands.Config
	logger *slog.Logger
	out    io.Writer

	last    duration.Duration
	hasLast bool
}

// NewSession creates a session writing results to out. Aliases added during
// the session do not modify cfg.
func NewSession(cfg commands.Config, logger *slog.Logger, out io.Writer) *Session {
	aliases := make(map[string]duration.Duration, len(cfg.Aliases))
	for k, v := range cfg.Aliases {
		aliases[k] = v
	}
	cfg.Aliases = aliases

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{cfg: cfg, logger: logger, out: out}
}

// Last returns the previous result, if any.
func (s *Session) Last() (duration.Duration, bool) {
	return s.last, s.hasLast
}

// Execute runs one input line. It reports quit=true when the session ends.
func (s *Session) Execute(line string) (quit bool, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.PrintHelp()
	case "parse", "p":
		err = s.cmdParse(args)
	case "convert", "c":
		err = s.cmdConvert(args)
	case "format", "f":
		err = s.cmdFormat(args)
	case "add", "+":
		err = s.cmdArith("+", args)
	case "sub", "-":
		err = s.cmdArith("-", args)
	case "mul", "*":
		err = s.cmdArith("*", args)
	case "div", "/":
		err = s.cmdArith("/", args)
	case "cmp":
		err = s.cmdCompare(args)
	case "alias":
		err = s.cmdAlias(args)
	case "aliases":
		s.cmdAliases()
	case "quit", "exit", "q":
		return true, nil
	default:
		err = fmt.Errorf("unknown command: %s (type 'help' for commands)", cmd)
	}

	if err != nil {
		s.logger.Debug("command failed", "command", cmd, "error", err)
	}
	return false, err
}

func (s *Session) resolve(expr string) (duration.Duration, error) {
	if expr == lastResult {
		if !s.hasLast {
			return duration.Duration{}, errors.New("no previous result")
		}
		return s.last, nil
	}
	return s.cfg.Resolve(expr)
}

func (s *Session) remember(d duration.Duration) {
	s.last = d
	s.hasLast = true
}

func (s *Session) cmdParse(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: parse <number><unit>", ErrUsage)
	}
	d, err := duration.FromString(args[0])
	if err != nil {
		return err
	}
	s.remember(d)
	fmt.Fprintf(s.out, "%s ms\n", strconv.FormatFloat(d.Milliseconds(), 'f', -1, 64))
	return nil
}

func (s *Session) cmdConvert(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: convert <expr> [unit]", ErrUsage)
	}
	d, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	unit := ""
	if len(args) == 2 {
		unit = args[1]
	}
	convs, err := commands.Convert(d, unit)
	if err != nil {
		return err
	}
	s.remember(d)
	commands.WriteConversions(s.out, convs)
	return nil
}

func (s *Session) cmdFormat(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return fmt.Errorf("%w: format <expr> [max-units] [short]", ErrUsage)
	}
	d, err := s.resolve(args[0])
	if err != nil {
		return err
	}

	opts := s.cfg.Format
	for _, a := range args[1:] {
		if a == "short" {
			opts.Short = true
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid max-units %q", a)
		}
		opts.MaxUnits = n
	}

	s.remember(d)
	fmt.Fprintln(s.out, d.Format(opts))
	return nil
}

func (s *Session) cmdArith(op string, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: %s <expr> <operand>", ErrUsage, op)
	}
	lhs, rhs := args[0], args[1]

	// Calculate resolves through the config, so substitute the last result.
	cfg := s.cfg
	if lhs == lastResult || rhs == lastResult {
		if !s.hasLast {
			return errors.New("no previous result")
		}
		cfg.Aliases = make(map[string]duration.Duration, len(s.cfg.Aliases)+1)
		for k, v := range s.cfg.Aliases {
			cfg.Aliases[k] = v
		}
		cfg.Aliases[lastResult] = s.last
	}

	out, err := commands.Calculate(cfg, lhs, op, rhs)
	if err != nil {
		return err
	}
	s.remember(*out.Result)
	fmt.Fprintf(s.out, "%s (%s ms)\n", out.Text, strconv.FormatFloat(out.Result.Milliseconds(), 'f', -1, 64))
	return nil
}

func (s *Session) cmdCompare(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: cmp <expr> <expr>", ErrUsage)
	}
	a, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	b, err := s.resolve(args[1])
	if err != nil {
		return err
	}

	switch {
	case a.LessThan(b):
		fmt.Fprintf(s.out, "%s < %s\n", args[0], args[1])
	case a.GreaterThan(b):
		fmt.Fprintf(s.out, "%s > %s\n", args[0], args[1])
	default:
		fmt.Fprintf(s.out, "%s == %s\n", args[0], args[1])
	}
	return nil
}

func (s *Session) cmdAlias(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: alias <name> <expr>", ErrUsage)
	}
	name := args[0]
	d, err := s.resolve(args[1])
	if err != nil {
		return err
	}

	probe := commands.Config{
		Format:   s.cfg.Format,
		Output:   commands.OutputText,
		LogLevel: "info",
		Aliases:  map[string]duration.Duration{name: d},
	}
	if err := probe.Validate(); err != nil {
		return err
	}

	s.cfg.Aliases[name] = d
	s.logger.Debug("alias defined", "name", name, "value", d)
	fmt.Fprintf(s.out, "%s = %s\n", name, d.Format(s.cfg.Format))
	return nil
}

func (s *Session) cmdAliases() {
	if len(s.cfg.Aliases) == 0 {
		fmt.Fprintln(s.out, "No aliases defined")
		return
	}
	names := make([]string, 0, len(s.cfg.Aliases))
	for name := range s.cfg.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %s = %s\n", name, s.cfg.Aliases[name].Format(s.cfg.Format))
	}
}

// PrintHelp writes the command summary.
func (s *Session) PrintHelp() {
	fmt.Fprintln(s.out, `
Duration Calculator Commands:
  Parsing & Display:
    parse <n><unit>                - Parse a unit string (ms, s, m, h, d, w, y)
    convert <expr> [unit]          - Show in every unit (or ms/s/m/h/d/w/mo/y)
    format <expr> [max] [short]    - Human-readable text

  Arithmetic:
    add <expr> <expr>              - Sum
    sub <expr> <expr>              - Difference
    mul <expr> <number>            - Scale
    div <expr> <number>            - Divide (number must not be 0)
    cmp <expr> <expr>              - Compare

  Aliases:
    alias <name> <expr>            - Name a duration
    aliases                        - List aliases

  General:
    help                           - Show this help
    quit                           - Exit

  Expressions: 90s, 1500 (milliseconds), an alias name, or _ (last result).`)
}
