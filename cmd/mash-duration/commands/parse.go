package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/mash-protocol/duration-go/pkg/duration"
)

// ParseOutput is the structured result of the parse command.
type ParseOutput struct {
	Input        string            `json:"input" yaml:"input" cbor:"1,keyasint"`
	Milliseconds duration.Duration `json:"milliseconds" yaml:"milliseconds" cbor:"2,keyasint"`
	Text         string            `json:"text" yaml:"text" cbor:"3,keyasint"`
}

// RunParse runs the parse command: strict unit-suffixed grammar only.
func RunParse(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common CommonOptions
	common.Register(fs)
	fs.Usage = func() { printParseUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one duration expression required")
		printParseUsage(stderr)
		return exitCommandError
	}

	cfg, logger, err := common.Load(stderr)
	if err != nil {
		return fail(stderr, err)
	}

	input := fs.Arg(0)
	d, err := duration.FromString(input)
	if err != nil {
		return fail(stderr, err)
	}
	logger.Debug("parsed duration", "input", input, "value", d)

	out := ParseOutput{Input: input, Milliseconds: d, Text: d.Format(cfg.Format)}
	err = writeOutput(stdout, cfg.Output, out, func(w io.Writer) {
		fmt.Fprintln(w, formatNumber(d.Milliseconds()))
	})
	if err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}

func printParseUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: mash-duration parse [options] <expr>

Parses <number><unit> or "<number> <unit>" (units: ms, s, m, h, d, w, y)
and prints the number of milliseconds.

Options:
  -config      Configuration file (YAML)
  -log-level   Log level: debug, info, warn, error
  -o, -output  Output format (text, json, yaml, cbor) [default: text]

Examples:
  mash-duration parse 90s
  mash-duration parse -o json "2 h"`)
}
