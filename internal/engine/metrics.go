package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	PageScrapeRequests atomic.Int64
	PlayerAPIRequests  atomic.Int64
	TimedTextRequests  atomic.Int64
	FetchErrors        atomic.Int64
	NotFoundErrors     atomic.Int64
}

// archiveHits counts transcript archive lookups that returned fresh cues.
var archiveHits atomic.Int64

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"transcript_requests":  metrics.TranscriptRequests.Load(),
		"page_scrape_requests": metrics.PageScrapeRequests.Load(),
		"player_api_requests":  metrics.PlayerAPIRequests.Load(),
		"timedtext_requests":   metrics.TimedTextRequests.Load(),
		"fetch_errors":         metrics.FetchErrors.Load(),
		"not_found_errors":     metrics.NotFoundErrors.Load(),
		"archive_hits":         archiveHits.Load(),
		"cache_hits":           hits,
		"cache_misses":         misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests",
		"page_scrape_requests", "player_api_requests", "timedtext_requests",
		"fetch_errors", "not_found_errors",
		"archive_hits", "cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the captions and server packages.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrPageScrape()         { metrics.PageScrapeRequests.Add(1) }
func IncrPlayerAPI()          { metrics.PlayerAPIRequests.Add(1) }
func IncrTimedText()          { metrics.TimedTextRequests.Add(1) }
func IncrFetchErrors()        { metrics.FetchErrors.Add(1) }
func IncrNotFound()           { metrics.NotFoundErrors.Add(1) }
