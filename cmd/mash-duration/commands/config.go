package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mash-protocol/duration-go/pkg/duration"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputCBOR = "cbor"
)

// lastResult names the previous REPL result in expressions.
const lastResult = "_"

// Config is the mash-duration configuration file.
//
//	format:
//	  max_units: 3
//	  short: false
//	output: text
//	log_level: info
//	aliases:
//	  sprint: 2w
//	  standup: {minutes: 15}
type Config struct {
	Format   duration.FormatOptions       `yaml:"format"`
	Output   string                       `yaml:"output"`
	LogLevel string                       `yaml:"log_level"`
	Aliases  map[string]duration.Duration `yaml:"aliases"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Format:   duration.FormatOptions{MaxUnits: duration.DefaultMaxUnits},
		Output:   OutputText,
		LogLevel: "info",
		Aliases:  make(map[string]duration.Duration),
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = make(map[string]duration.Duration)
	}
	return cfg, nil
}

// Validate checks the configuration for unsupported values.
func (c Config) Validate() error {
	var errs []error

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML, OutputCBOR:
	default:
		errs = append(errs, fmt.Errorf("unknown output %q (supported: text, json, yaml, cbor)", c.Output))
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if c.Format.MaxUnits < 0 {
		errs = append(errs, fmt.Errorf("format.max_units must not be negative, got %d", c.Format.MaxUnits))
	}

	for name := range c.Aliases {
		if err := validateAliasName(name); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateAliasName(name string) error {
	if name == "" || name == lastResult {
		return fmt.Errorf("invalid alias name %q", name)
	}
	if strings.ContainsAny(name, " \t") {
		return fmt.Errorf("alias name %q must not contain whitespace", name)
	}
	if _, err := duration.ParseValue(name); err == nil {
		return fmt.Errorf("alias name %q shadows a duration literal", name)
	}
	return nil
}

// Resolve turns an expression into a Duration. Alias names are looked up
// first; anything else must be a unit-suffixed string or a millisecond count.
func (c Config) Resolve(expr string) (duration.Duration, error) {
	if d, ok := c.Aliases[expr]; ok {
		return d, nil
	}
	return duration.ParseValue(expr)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q (supported: debug, info, warn, error)", s)
	}
	return level, nil
}

// NewLogger builds the operational logger writing text records to w.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	l, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
