package transcript

import (
	"fmt"
	"log/slog"
	"math"
)

// FormatTimestamp renders a time offset as a bracketed label.
//
//	seconds → [72.5s]
//	minutes → [1:12]        (whole seconds, zero-padded; no decimal)
//	hms     → [1:02:05]     (hours omitted when zero → [2:05])
//
// Unknown formats fall back to seconds. Negative or NaN input is clamped to
// zero rather than failing the request.
func FormatTimestamp(seconds float64, format string) string {
	if math.IsNaN(seconds) || seconds < 0 {
		slog.Debug("timestamp clamped to zero", slog.Float64("seconds", seconds))
		seconds = 0
	}

	switch format {
	case FormatMinutes:
		mins := int(seconds) / 60
		secs := int(seconds) % 60
		return fmt.Sprintf("[%d:%02d]", mins, secs)
	case FormatHMS, FormatTimecode:
		hours := int(seconds) / 3600
		mins := (int(seconds) % 3600) / 60
		secs := int(seconds) % 60
		if hours > 0 {
			return fmt.Sprintf("[%d:%02d:%02d]", hours, mins, secs)
		}
		return fmt.Sprintf("[%d:%02d]", mins, secs)
	default:
		return fmt.Sprintf("[%.1fs]", seconds)
	}
}
