package captions

import (
	"testing"
)

func TestParseTimedTextXML(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.5">Hello world</text>
  <text start="2.5" dur="1.9">it&#39;s a &lt;i&gt;test&lt;/i&gt;</text>
  <text start="4.4" dur="0.5"></text>
</transcript>`)

	cues, err := parseTimedTextXML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("cues = %d, want 3", len(cues))
	}
	if cues[0].Text != "Hello world" || cues[0].Start != 0.0 || cues[0].Duration != 2.5 {
		t.Errorf("cue 0 = %+v", cues[0])
	}
	if cues[1].Text != "it's a test" {
		t.Errorf("cue 1 text = %q, want markup stripped", cues[1].Text)
	}
	if cues[2].Text != "" {
		t.Errorf("cue 2 text = %q, want empty", cues[2].Text)
	}
}

func TestParseTimedTextXMLMalformed(t *testing.T) {
	if _, err := parseTimedTextXML([]byte("{not xml}")); err == nil {
		t.Error("expected error for malformed XML")
	}
}

func TestParseJSON3(t *testing.T) {
	data := []byte(`{
  "events": [
    {"tStartMs": 0, "dDurationMs": 1000},
    {"tStartMs": 1200, "dDurationMs": 2300, "segs": [{"utf8": "Hello "}, {"utf8": "world"}]},
    {"tStartMs": 3500, "dDurationMs": 1500, "segs": [{"utf8": "how are you?"}]}
  ]
}`)

	cues, err := parseJSON3(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First event has no segs (window definition) and is skipped.
	if len(cues) != 2 {
		t.Fatalf("cues = %d, want 2", len(cues))
	}
	if cues[0].Text != "Hello world" {
		t.Errorf("cue 0 text = %q", cues[0].Text)
	}
	if cues[0].Start != 1.2 || cues[0].Duration != 2.3 {
		t.Errorf("cue 0 timing = %v/%v, want 1.2/2.3", cues[0].Start, cues[0].Duration)
	}
	if cues[1].Text != "how are you?" {
		t.Errorf("cue 1 text = %q", cues[1].Text)
	}
}

func TestParseJSON3Malformed(t *testing.T) {
	if _, err := parseJSON3([]byte("<xml/>")); err == nil {
		t.Error("expected error for malformed json3")
	}
}

func TestWithFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://yt.test/api/timedtext", "https://yt.test/api/timedtext?fmt=json3"},
		{"https://yt.test/api/timedtext?v=abc", "https://yt.test/api/timedtext?v=abc&fmt=json3"},
	}
	for _, tt := range tests {
		if got := withFormat(tt.in, "json3"); got != tt.want {
			t.Errorf("withFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
