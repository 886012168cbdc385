package transcript

import (
	"math"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		format  string
		want    string
	}{
		{"seconds zero", 0, FormatSeconds, "[0.0s]"},
		{"seconds fractional", 72.5, FormatSeconds, "[72.5s]"},
		{"seconds rounds to one decimal", 3.14159, FormatSeconds, "[3.1s]"},
		{"minutes under a minute", 5, FormatMinutes, "[0:05]"},
		{"minutes over a minute", 72.5, FormatMinutes, "[1:12]"},
		{"minutes exact minute", 120, FormatMinutes, "[2:00]"},
		{"hms under an hour", 125, FormatHMS, "[2:05]"},
		{"hms over an hour", 3725, FormatHMS, "[1:02:05]"},
		{"timecode alias", 125, FormatTimecode, "[2:05]"},
		{"timecode over an hour", 7322, FormatTimecode, "[2:02:02]"},
		{"unknown format falls back to seconds", 12.3, "frames", "[12.3s]"},
		{"empty format falls back to seconds", 12.3, "", "[12.3s]"},
		{"negative clamps to zero", -3.2, FormatSeconds, "[0.0s]"},
		{"negative clamps in minutes", -61, FormatMinutes, "[0:00]"},
		{"nan clamps to zero", math.NaN(), FormatSeconds, "[0.0s]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.seconds, tt.format); got != tt.want {
				t.Errorf("FormatTimestamp(%v, %q) = %q, want %q", tt.seconds, tt.format, got, tt.want)
			}
		})
	}
}
