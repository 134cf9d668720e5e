package duration

import (
	"fmt"
	"regexp"
	"strconv"
)

// Milliseconds per unit. Months are 30 days and years are 365 days.
const (
	Millisecond float64 = 1
	Second              = 1000 * Millisecond
	Minute              = 60 * Second
	Hour                = 60 * Minute
	Day                 = 24 * Hour
	Week                = 7 * Day
	Month               = 30 * Day
	Year                = 365 * Day
)

// Unit is a unit token accepted by Parse.
type Unit string

// Unit tokens, case-sensitive.
const (
	UnitMillisecond Unit = "ms"
	UnitSecond      Unit = "s"
	UnitMinute      Unit = "m"
	UnitHour        Unit = "h"
	UnitDay         Unit = "d"
	UnitWeek        Unit = "w"
	UnitYear        Unit = "y"
)

var multipliers = map[Unit]float64{
	UnitMillisecond: Millisecond,
	UnitSecond:      Second,
	UnitMinute:      Minute,
	UnitHour:        Hour,
	UnitDay:         Day,
	UnitWeek:        Week,
	UnitYear:        Year,
}

// Units returns the accepted unit tokens from smallest to largest.
func Units() []Unit {
	return []Unit{
		UnitMillisecond,
		UnitSecond,
		UnitMinute,
		UnitHour,
		UnitDay,
		UnitWeek,
		UnitYear,
	}
}

// ParseUnit validates a unit token.
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := multipliers[u]; !ok {
		return "", fmt.Errorf("unknown unit %q", s)
	}
	return u, nil
}

// Multiplier returns the number of milliseconds in one u, or 0 for an unknown unit.
func (u Unit) Multiplier() float64 {
	return multipliers[u]
}

// String returns the unit token.
func (u Unit) String() string {
	return string(u)
}

// durationPattern is the unit-suffixed grammar. RE2 \d is ASCII only.
var durationPattern = regexp.MustCompile(`^(\d+)\s?(ms|s|m|h|d|w|y)$`)

// Parse converts a unit-suffixed string such as "90s" or "2 h" into milliseconds.
//
// The number must be plain ASCII digits and may be separated from the unit
// by at most one whitespace character. Anything else, including a number too
// large for a float64, fails with a *FormatError.
func Parse(s string) (float64, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &FormatError{Input: s}
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &FormatError{Input: s}
	}

	return n * Unit(m[2]).Multiplier(), nil
}
