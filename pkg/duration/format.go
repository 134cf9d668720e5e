package duration

import (
	"math"
	"strconv"
	"strings"
)

// DefaultMaxUnits is the number of unit terms Format renders when
// FormatOptions.MaxUnits is not positive.
const DefaultMaxUnits = 2

// FormatOptions controls Format. The zero value renders at most two units
// with full unit names.
type FormatOptions struct {
	// MaxUnits is the maximum number of non-zero unit terms to render.
	MaxUnits int `yaml:"max_units" json:"max_units"`

	// Short selects abbreviated tokens ("1d 2h") instead of names ("1 day, 2 hours").
	Short bool `yaml:"short" json:"short"`
}

type unitLabel struct {
	short    string
	singular string
	plural   string
}

var (
	labelYear        = unitLabel{"y", "year", "years"}
	labelMonth       = unitLabel{"mo", "month", "months"}
	labelDay         = unitLabel{"d", "day", "days"}
	labelHour        = unitLabel{"h", "hour", "hours"}
	labelMinute      = unitLabel{"m", "minute", "minutes"}
	labelSecond      = unitLabel{"s", "second", "seconds"}
	labelMillisecond = unitLabel{"ms", "millisecond", "milliseconds"}
)

type bucket struct {
	label unitLabel
	value float64
}

// buckets reads the seven-step cascade off the accessors of a non-negative d.
// Each step is floor(accessor mod wrap); years are not wrapped.
func (d Duration) buckets() [7]bucket {
	return [7]bucket{
		{labelYear, math.Floor(d.Years())},
		{labelMonth, math.Floor(math.Mod(d.Months(), 12))},
		{labelDay, math.Floor(math.Mod(d.Days(), 30))},
		{labelHour, math.Floor(math.Mod(d.Hours(), 24))},
		{labelMinute, math.Floor(math.Mod(d.Minutes(), 60))},
		{labelSecond, math.Floor(math.Mod(d.Seconds(), 60))},
		{labelMillisecond, math.Floor(math.Mod(d.Milliseconds(), 1000))},
	}
}

// Format renders d as human-readable text.
//
// Units are 365-day years, 30-day months, days, hours, minutes, seconds and
// milliseconds, largest first, skipping zero terms. Negative durations are
// rendered as their magnitude with a leading "-".
func (d Duration) Format(opts FormatOptions) string {
	maxUnits := opts.MaxUnits
	if maxUnits <= 0 {
		maxUnits = DefaultMaxUnits
	}

	if d.ms == 0 {
		return renderTerm(0, labelMillisecond, opts.Short)
	}

	abs := Duration{ms: math.Abs(d.ms)}

	terms := make([]string, 0, maxUnits)
	for _, b := range abs.buckets() {
		if len(terms) == maxUnits {
			break
		}
		if b.value > 0 {
			terms = append(terms, renderTerm(b.value, b.label, opts.Short))
		}
	}

	if len(terms) == 0 {
		// Every bucket wrapped to zero. A floored zero carries no sign.
		ms := math.Floor(abs.ms)
		out := renderTerm(ms, labelMillisecond, opts.Short)
		if d.ms < 0 && ms > 0 {
			out = "-" + out
		}
		return out
	}

	sep := ", "
	if opts.Short {
		sep = " "
	}
	out := strings.Join(terms, sep)
	if d.ms < 0 {
		out = "-" + out
	}
	return out
}

// String formats d with the default options.
func (d Duration) String() string {
	return d.Format(FormatOptions{})
}

func renderTerm(value float64, label unitLabel, short bool) string {
	n := strconv.FormatFloat(value, 'f', -1, 64)
	if short {
		return n + label.short
	}
	if value == 1 {
		return n + " " + label.singular
	}
	return n + " " + label.plural
}
