// Package duration implements an immutable time span value with a compact
// unit-suffixed string parser and a human-readable formatter.
//
// A Duration stores a signed float64 count of milliseconds. Every operation
// returns a new value, so Durations are safe to copy and share between
// goroutines.
//
// # Parsing
//
// Parse and FromString accept "<digits><unit>" with at most one whitespace
// character between number and unit:
//
//	duration.FromString("90s")  // 90 000 ms
//	duration.FromString("2 h")  // 7 200 000 ms
//
// Units are ms, s, m, h, d, w and y (case-sensitive). The grammar is checked
// at run time; malformed input such as "1.5s", "-1s" or "10z" returns a
// *FormatError carrying the input. There is no signed or fractional form.
//
// # Fixed-Length Units
//
// Months are always 30 days and years 365 days, both for construction from
// Components and for the Months and Years accessors. No calendar is consulted.
//
// # Formatting
//
// Format renders up to FormatOptions.MaxUnits non-zero terms, largest first:
//
//	duration.From(duration.Components{Hours: 2, Minutes: 30, Seconds: 45}).String()
//	// "2 hours, 30 minutes"
//	duration.From(duration.Components{Days: 1, Hours: 2}).Format(duration.FormatOptions{Short: true})
//	// "1d 2h"
//
// Negative durations are formatted as their magnitude prefixed with "-".
//
// # Encoding
//
// Duration implements JSON, YAML, CBOR and text (un)marshalers. Encoded
// values are millisecond numbers; decoders also accept unit-suffixed strings
// and Components objects.
package duration
