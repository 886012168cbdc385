package captions

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/saulnewbury/youtube-transcript-microservice/internal/engine"
	"github.com/saulnewbury/youtube-transcript-microservice/internal/transcript"
)

// Caption payload parsing. Tracks are served in two formats: the legacy
// timedtext XML (<text start="1.2" dur="3.4">) and the json3 event stream
// the web player uses. Both carry per-cue start and duration, which is what
// the grouper needs.

// --- timedtext XML ---

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

// parseTimedTextXML parses a timedtext XML document into cues.
// Lines whose text cleans to empty are kept; they carry timing and the
// grouper knows to skip their text.
func parseTimedTextXML(data []byte) ([]transcript.Cue, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}
	cues := make([]transcript.Cue, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		cues = append(cues, transcript.Cue{
			Text:     engine.CleanCaptionText(line.Text),
			Start:    line.Start,
			Duration: line.Dur,
		})
	}
	return cues, nil
}

// --- json3 ---

type json3Resp struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs    int64      `json:"tStartMs"`
	DurationMs int64      `json:"dDurationMs"`
	Segs       []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// parseJSON3 parses a json3 caption payload into cues.
// Events without text segments (window definitions etc.) are skipped.
func parseJSON3(data []byte) ([]transcript.Cue, error) {
	var resp json3Resp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse json3 captions: %w", err)
	}
	var cues []transcript.Cue
	for _, ev := range resp.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		cues = append(cues, transcript.Cue{
			Text:     engine.CleanCaptionText(sb.String()),
			Start:    float64(ev.StartMs) / 1000.0,
			Duration: float64(ev.DurationMs) / 1000.0,
		})
	}
	return cues, nil
}

// fetchTrack downloads a caption track and parses it into cues.
// json3 is requested first (cleanest timing data); on failure the bare track
// URL is fetched and parsed as timedtext XML.
func fetchTrack(ctx context.Context, baseURL string) ([]transcript.Cue, error) {
	engine.IncrTimedText()

	cues, jsonErr := fetchTrackFormat(ctx, withFormat(baseURL, "json3"), parseJSON3)
	if jsonErr == nil && len(cues) > 0 {
		return cues, nil
	}

	cues, xmlErr := fetchTrackFormat(ctx, baseURL, parseTimedTextXML)
	if xmlErr != nil {
		return nil, errors.Join(jsonErr, xmlErr)
	}
	return cues, nil
}

func fetchTrackFormat(ctx context.Context, trackURL string, parse func([]byte) ([]transcript.Cue, error)) ([]transcript.Cue, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch captions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, captionsMaxBytes))
	if err != nil {
		return nil, err
	}
	return parse(body)
}

// withFormat appends a fmt parameter to a caption track URL.
func withFormat(baseURL, format string) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "fmt=" + format
}
