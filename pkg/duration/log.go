package duration

import "log/slog"

// LogValue implements slog.LogValuer, logging both the raw millisecond count
// and the formatted text.
func (d Duration) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("ms", d.ms),
		slog.String("text", d.String()),
	)
}

// Compile-time interface satisfaction check.
var _ slog.LogValuer = Duration{}
