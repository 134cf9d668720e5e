package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/mash-protocol/duration-go/pkg/duration"
)

// FormatOutput is the structured result of the format command.
type FormatOutput struct {
	Milliseconds duration.Duration `json:"milliseconds" yaml:"milliseconds" cbor:"1,keyasint"`
	Text         string            `json:"text" yaml:"text" cbor:"2,keyasint"`
}

// RunFormat runs the format command.
func RunFormat(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common CommonOptions
	common.Register(fs)
	maxUnits := fs.Int("max-units", 0, "Maximum number of unit terms (default from config, else 2)")
	short := fs.Bool("short", false, "Use abbreviated units (1d 2h)")
	fs.Usage = func() { printFormatUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one duration expression required")
		printFormatUsage(stderr)
		return exitCommandError
	}

	cfg, logger, err := common.Load(stderr)
	if err != nil {
		return fail(stderr, err)
	}

	opts := cfg.Format
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-units":
			opts.MaxUnits = *maxUnits
		case "short":
			opts.Short = *short
		}
	})
	if opts.MaxUnits < 0 {
		return fail(stderr, fmt.Errorf("-max-units must not be negative, got %d", opts.MaxUnits))
	}

	d, err := cfg.Resolve(fs.Arg(0))
	if err != nil {
		return fail(stderr, err)
	}

	text := d.Format(opts)
	logger.Debug("formatted duration", "ms", d.Milliseconds(), "max_units", opts.MaxUnits, "short", opts.Short)

	err = writeOutput(stdout, cfg.Output, FormatOutput{Milliseconds: d, Text: text}, func(w io.Writer) {
		fmt.Fprintln(w, text)
	})
	if err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}

func printFormatUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: mash-duration format [options] <expr>

Prints a human-readable duration. <expr> is a unit-suffixed string, a
millisecond count or a configured alias. Use "--" before a negative count.

Options:
  -max-units   Maximum number of unit terms [default: 2]
  -short       Use abbreviated units (1d 2h)
  -config      Configuration file (YAML)
  -log-level   Log level: debug, info, warn, error
  -o, -output  Output format (text, json, yaml, cbor) [default: text]

Examples:
  mash-duration format 5400000
  mash-duration format -short -max-units 3 36h`)
}
