package duration

import (
	"math"
	"time"
)

// Duration is an immutable span of time stored as a signed float64 count of
// milliseconds. The zero value is a zero-length duration.
type Duration struct {
	ms float64
}

// Components is a set of unit counts aggregated into a Duration by From.
// Zero fields contribute nothing.
type Components struct {
	Years        float64 `json:"years,omitempty" yaml:"years,omitempty" cbor:"1,keyasint,omitempty"`
	Months       float64 `json:"months,omitempty" yaml:"months,omitempty" cbor:"2,keyasint,omitempty"`
	Days         float64 `json:"days,omitempty" yaml:"days,omitempty" cbor:"3,keyasint,omitempty"`
	Hours        float64 `json:"hours,omitempty" yaml:"hours,omitempty" cbor:"4,keyasint,omitempty"`
	Minutes      float64 `json:"minutes,omitempty" yaml:"minutes,omitempty" cbor:"5,keyasint,omitempty"`
	Seconds      float64 `json:"seconds,omitempty" yaml:"seconds,omitempty" cbor:"6,keyasint,omitempty"`
	Milliseconds float64 `json:"milliseconds,omitempty" yaml:"milliseconds,omitempty" cbor:"7,keyasint,omitempty"`
}

// Total returns the weighted sum of c in milliseconds.
func (c Components) Total() float64 {
	var ms float64
	if c.Years != 0 {
		ms += c.Years * Year
	}
	if c.Months != 0 {
		ms += c.Months * Month
	}
	if c.Days != 0 {
		ms += c.Days * Day
	}
	if c.Hours != 0 {
		ms += c.Hours * Hour
	}
	if c.Minutes != 0 {
		ms += c.Minutes * Minute
	}
	if c.Seconds != 0 {
		ms += c.Seconds * Second
	}
	if c.Milliseconds != 0 {
		ms += c.Milliseconds
	}
	return ms
}

// New wraps a millisecond count.
func New(ms float64) Duration {
	return Duration{ms: ms}
}

// From aggregates components into a Duration.
func From(c Components) Duration {
	return Duration{ms: c.Total()}
}

// FromString parses a unit-suffixed string. See Parse for the grammar.
func FromString(s string) (Duration, error) {
	ms, err := Parse(s)
	if err != nil {
		return Duration{}, err
	}
	return Duration{ms: ms}, nil
}

// MustParse is like FromString but panics on malformed input.
// It is intended for fixed literals.
func MustParse(s string) Duration {
	d, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromMilliseconds is the same as New.
func FromMilliseconds(ms float64) Duration { return Duration{ms: ms} }

// FromSeconds returns a Duration of n seconds.
func FromSeconds(n float64) Duration { return Duration{ms: n * Second} }

// FromMinutes returns a Duration of n minutes.
func FromMinutes(n float64) Duration { return Duration{ms: n * Minute} }

// FromHours returns a Duration of n hours.
func FromHours(n float64) Duration { return Duration{ms: n * Hour} }

// FromDays returns a Duration of n days.
func FromDays(n float64) Duration { return Duration{ms: n * Day} }

// FromWeeks returns a Duration of n weeks.
func FromWeeks(n float64) Duration { return Duration{ms: n * Week} }

// FromMonths returns a Duration of n 30-day months.
func FromMonths(n float64) Duration { return Duration{ms: n * Month} }

// FromYears returns a Duration of n 365-day years.
func FromYears(n float64) Duration { return Duration{ms: n * Year} }

// FromStd converts a time.Duration.
func FromStd(d time.Duration) Duration {
	return Duration{ms: float64(d) / float64(time.Millisecond)}
}

// Std converts d to a time.Duration, truncating below one nanosecond.
// Values outside the time.Duration range saturate.
func (d Duration) Std() time.Duration {
	ns := d.ms * float64(time.Millisecond)
	switch {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case ns <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}

// Milliseconds returns the raw millisecond count.
func (d Duration) Milliseconds() float64 { return d.ms }

// Seconds returns d in seconds.
func (d Duration) Seconds() float64 { return d.ms / Second }

// Minutes returns d in minutes.
func (d Duration) Minutes() float64 { return d.ms / Minute }

// Hours returns d in hours.
func (d Duration) Hours() float64 { return d.ms / Hour }

// Days returns d in days.
func (d Duration) Days() float64 { return d.ms / Day }

// Weeks returns d in weeks.
func (d Duration) Weeks() float64 { return d.ms / Week }

// Months returns d in 30-day months.
func (d Duration) Months() float64 { return d.ms / Month }

// Years returns d in 365-day years.
func (d Duration) Years() float64 { return d.ms / Year }

// IsZero reports whether d is zero length.
func (d Duration) IsZero() bool { return d.ms == 0 }

// Add returns d + other.
func (d Duration) Add(other Duration) Duration {
	return Duration{ms: d.ms + other.ms}
}

// Subtract returns d - other. The result may be negative.
func (d Duration) Subtract(other Duration) Duration {
	return Duration{ms: d.ms - other.ms}
}

// Multiply returns d scaled by factor.
func (d Duration) Multiply(factor float64) Duration {
	return Duration{ms: d.ms * factor}
}

// Divide returns d divided by factor.
// Returns ErrDivisionByZero if factor is zero.
func (d Duration) Divide(factor float64) (Duration, error) {
	if factor == 0 {
		return Duration{}, ErrDivisionByZero
	}
	return Duration{ms: d.ms / factor}, nil
}

// Equal reports whether d and other hold the same millisecond count.
func (d Duration) Equal(other Duration) bool { return d.ms == other.ms }

// GreaterThan reports whether d is longer than other.
func (d Duration) GreaterThan(other Duration) bool { return d.ms > other.ms }

// LessThan reports whether d is shorter than other.
func (d Duration) LessThan(other Duration) bool { return d.ms < other.ms }

// GreaterThanOrEqual reports whether d is at least as long as other.
func (d Duration) GreaterThanOrEqual(other Duration) bool { return d.ms >= other.ms }

// LessThanOrEqual reports whether d is at most as long as other.
func (d Duration) LessThanOrEqual(other Duration) bool { return d.ms <= other.ms }

// Compare returns -1, 0 or +1 as d is shorter than, equal to or longer than other.
func (d Duration) Compare(other Duration) int {
	switch {
	case d.ms < other.ms:
		return -1
	case d.ms > other.ms:
		return 1
	default:
		return 0
	}
}
