package captions

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantID   string
		wantShort bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url extra params", "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", false},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short link with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=30", "dQw4w9WgXcQ", false},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"legacy v url", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"live url", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"shorts short-link", "https://youtu.be/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, isShorts, err := ExtractVideoID(tt.url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
			if isShorts != tt.wantShort {
				t.Errorf("isShorts = %v, want %v", isShorts, tt.wantShort)
			}
		})
	}
}

func TestExtractVideoIDInvalid(t *testing.T) {
	for _, url := range []string{
		"",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/",
		"https://www.youtube.com/watch?v=tooshort",
		"not a url at all",
	} {
		t.Run(url, func(t *testing.T) {
			_, _, err := ExtractVideoID(url)
			if !errors.Is(err, ErrBadVideoURL) {
				t.Errorf("expected ErrBadVideoURL, got %v", err)
			}
		})
	}
}

func TestValidVideoID(t *testing.T) {
	if !ValidVideoID("dQw4w9WgXcQ") {
		t.Error("expected valid")
	}
	for _, s := range []string{"", "short", "waytoolongforanid", "has space 1", "bad/chars!!"} {
		if ValidVideoID(s) {
			t.Errorf("expected %q invalid", s)
		}
	}
}
