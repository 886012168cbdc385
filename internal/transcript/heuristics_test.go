package transcript

import "testing"

func TestIsSentenceEnd(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"period", "That is all.", true},
		{"exclamation", "Watch this!", true},
		{"question", "how are you?", true},
		{"ellipsis", "and then...", true},
		{"comma counts as breakpoint", "first of all,", true},
		{"trailing whitespace trimmed", "done. ", true},
		{"short unpunctuated", "hello world", false},
		{"seven words", "one two three four five six seven", false},
		{"eight words", "one two three four five six seven eight", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSentenceEnd(tt.text); got != tt.want {
				t.Errorf("isSentenceEnd(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasNaturalPause(t *testing.T) {
	tests := []struct {
		name      string
		end       float64
		nextStart float64
		want      bool
	}{
		{"back to back", 10.0, 10.0, false},
		{"small gap", 10.0, 10.4, false},
		{"exactly threshold", 10.0, 10.5, false},
		{"just over threshold", 10.0, 10.6, true},
		{"large gap", 10.0, 15.0, true},
		{"overlapping cues", 10.0, 9.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasNaturalPause(tt.end, tt.nextStart); got != tt.want {
				t.Errorf("hasNaturalPause(%v, %v) = %v, want %v", tt.end, tt.nextStart, got, tt.want)
			}
		})
	}
}
