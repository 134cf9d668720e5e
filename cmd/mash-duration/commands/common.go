// Package commands implements the mash-duration subcommands.
package commands

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/mash-protocol/duration-go/pkg/duration"
	"gopkg.in/yaml.v3"
)

// Exit codes.
const (
	exitSuccess      = 0
	exitCommandError = 1
	exitInvalidInput = 2
)

// CommonOptions are the flags shared by every subcommand.
type CommonOptions struct {
	ConfigFile string
	LogLevel   string
	Output     string
}

// Register adds the common flags to fs.
func (o *CommonOptions) Register(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", "", "Configuration file (YAML)")
	fs.StringVar(&o.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&o.Output, "output", "", "Output format: text, json, yaml, cbor")
	fs.StringVar(&o.Output, "o", "", "Output format (shorthand)")
}

// Load reads the configuration file, applies flag overrides and builds a
// logger on stderr.
func (o CommonOptions) Load(stderr io.Writer) (Config, *slog.Logger, error) {
	cfg, err := LoadConfig(o.ConfigFile)
	if err != nil {
		return Config{}, nil, err
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.Output != "" {
		cfg.Output = o.Output
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := NewLogger(stderr, cfg.LogLevel)
	if err != nil {
		return Config{}, nil, err
	}
	if o.ConfigFile != "" {
		logger.Debug("loaded config", "path", o.ConfigFile, "aliases", len(cfg.Aliases))
	}
	return cfg, logger, nil
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, duration.ErrInvalidFormat), errors.Is(err, duration.ErrDivisionByZero):
		return exitInvalidInput
	default:
		return exitCommandError
	}
}

// fail prints err to stderr and returns its exit code.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

// writeOutput encodes v in the structured formats and calls text for "text".
func writeOutput(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
	case OutputCBOR:
		data, err := cbor.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding CBOR: %w", err)
		}
		fmt.Fprintln(w, hex.EncodeToString(data))
	default:
		text(w)
	}
	return nil
}

// formatNumber prints a float without exponent or trailing zeros.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
