package commands

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/mash-protocol/duration-go/pkg/duration"
)

// CalcOutput is the result of one calculation. Result is set for arithmetic
// operators, Compare for "cmp".
type CalcOutput struct {
	Op      string             `json:"op" yaml:"op" cbor:"1,keyasint"`
	Result  *duration.Duration `json:"result,omitempty" yaml:"result,omitempty" cbor:"2,keyasint,omitempty"`
	Compare *int               `json:"compare,omitempty" yaml:"compare,omitempty" cbor:"3,keyasint,omitempty"`
	Text    string             `json:"text" yaml:"text" cbor:"4,keyasint"`
}

// Calculate evaluates "lhs op rhs". Operands of +, - and cmp are resolved
// through cfg; the right operand of * and / is a plain number.
func Calculate(cfg Config, lhs, op, rhs string) (CalcOutput, error) {
	a, err := cfg.Resolve(lhs)
	if err != nil {
		return CalcOutput{}, err
	}

	var result duration.Duration
	switch op {
	case "+", "add":
		b, err := cfg.Resolve(rhs)
		if err != nil {
			return CalcOutput{}, err
		}
		result = a.Add(b)
	case "-", "sub":
		b, err := cfg.Resolve(rhs)
		if err != nil {
			return CalcOutput{}, err
		}
		result = a.Subtract(b)
	case "*", "x", "mul":
		f, err := parseFactor(rhs)
		if err != nil {
			return CalcOutput{}, err
		}
		result = a.Multiply(f)
	case "/", "div":
		f, err := parseFactor(rhs)
		if err != nil {
			return CalcOutput{}, err
		}
		result, err = a.Divide(f)
		if err != nil {
			return CalcOutput{}, err
		}
	case "cmp":
		b, err := cfg.Resolve(rhs)
		if err != nil {
			return CalcOutput{}, err
		}
		c := a.Compare(b)
		return CalcOutput{
			Op:      op,
			Compare: &c,
			Text:    fmt.Sprintf("%s %s %s", lhs, compareSymbol(c), rhs),
		}, nil
	default:
		return CalcOutput{}, fmt.Errorf("unknown operator %q (supported: + - * / cmp)", op)
	}

	return CalcOutput{Op: op, Result: &result, Text: result.Format(cfg.Format)}, nil
}

func parseFactor(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid factor %q: %w", s, err)
	}
	return f, nil
}

func compareSymbol(c int) string {
	switch {
	case c < 0:
		return "<"
	case c > 0:
		return ">"
	default:
		return "=="
	}
}

// RunCalc runs the calc command.
func RunCalc(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common CommonOptions
	common.Register(fs)
	fs.Usage = func() { printCalcUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(stderr, "Error: expected <lhs> <op> <rhs>")
		printCalcUsage(stderr)
		return exitCommandError
	}

	cfg, logger, err := common.Load(stderr)
	if err != nil {
		return fail(stderr, err)
	}

	out, err := Calculate(cfg, fs.Arg(0), fs.Arg(1), fs.Arg(2))
	if err != nil {
		return fail(stderr, err)
	}
	logger.Debug("calculated", "lhs", fs.Arg(0), "op", fs.Arg(1), "rhs", fs.Arg(2), "text", out.Text)

	err = writeOutput(stdout, cfg.Output, out, func(w io.Writer) {
		fmt.Fprintln(w, out.Text)
	})
	if err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}

func printCalcUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: mash-duration calc [options] <lhs> <op> <rhs>

Operators:
  +, add    Sum of two durations
  -, sub    Difference of two durations (may be negative)
  *, x, mul Duration times a number
  /, div    Duration divided by a non-zero number
  cmp       Compare two durations

Operands are unit-suffixed strings, millisecond counts or configured aliases.
Put "--" before a negative operand so it is not read as a flag.

Options:
  -config      Configuration file (YAML)
  -log-level   Log level: debug, info, warn, error
  -o, -output  Output format (text, json, yaml, cbor) [default: text]

Examples:
  mash-duration calc 90s + 2m
  mash-duration calc 1d / 3
  mash-duration calc -- -1500 + 1s
  mash-duration calc sprint cmp 10d`)
}
