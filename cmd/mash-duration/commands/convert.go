package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/mash-protocol/duration-go/pkg/duration"
)

// Conversion is one unit reading of a duration.
type Conversion struct {
	Unit  string  `json:"unit" yaml:"unit" cbor:"1,keyasint"`
	Value float64 `json:"value" yaml:"value" cbor:"2,keyasint"`
}

var conversions = []struct {
	unit  string
	value func(duration.Duration) float64
}{
	{"ms", duration.Duration.Milliseconds},
	{"s", duration.Duration.Seconds},
	{"m", duration.Duration.Minutes},
	{"h", duration.Duration.Hours},
	{"d", duration.Duration.Days},
	{"w", duration.Duration.Weeks},
	{"mo", duration.Duration.Months},
	{"y", duration.Duration.Years},
}

// Convert reads d in every unit, or in unit only when it is non-empty.
func Convert(d duration.Duration, unit string) ([]Conversion, error) {
	var out []Conversion
	for _, c := range conversions {
		if unit == "" || unit == c.unit {
			out = append(out, Conversion{Unit: c.unit, Value: c.value(d)})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unknown unit %q (supported: ms, s, m, h, d, w, mo, y)", unit)
	}
	return out, nil
}

// WriteConversions prints conversions as aligned "unit value" lines. A single
// conversion prints only the value.
func WriteConversions(w io.Writer, convs []Conversion) {
	if len(convs) == 1 {
		fmt.Fprintln(w, formatNumber(convs[0].Value))
		return
	}
	for _, c := range convs {
		fmt.Fprintf(w, "%-3s %s\n", c.Unit, formatNumber(c.Value))
	}
}

// RunConvert runs the convert command.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common CommonOptions
	common.Register(fs)
	unit := fs.String("unit", "", "Only print this unit (ms, s, m, h, d, w, mo, y)")
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one duration expression required")
		printConvertUsage(stderr)
		return exitCommandError
	}

	cfg, logger, err := common.Load(stderr)
	if err != nil {
		return fail(stderr, err)
	}

	d, err := cfg.Resolve(fs.Arg(0))
	if err != nil {
		return fail(stderr, err)
	}

	convs, err := Convert(d, *unit)
	if err != nil {
		return fail(stderr, err)
	}
	logger.Debug("converted duration", "value", d, "units", len(convs))

	err = writeOutput(stdout, cfg.Output, convs, func(w io.Writer) {
		WriteConversions(w, convs)
	})
	if err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: mash-duration convert [options] <expr>

Prints a duration in every unit. <expr> is a unit-suffixed string, a
millisecond count or a configured alias. Months are 30 days, years 365 days.
Use "--" before a negative count.

Options:
  -unit        Only print this unit (ms, s, m, h, d, w, mo, y)
  -config      Configuration file (YAML)
  -log-level   Log level: debug, info, warn, error
  -o, -output  Output format (text, json, yaml, cbor) [default: text]

Examples:
  mash-duration convert 36h
  mash-duration convert -unit h 5400000`)
}
