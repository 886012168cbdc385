package engine

import (
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	PreferredLanguages   []string      // caption language preference order
	FetchTimeout         time.Duration // per-request timeout for upstream fetches
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	ArchivePath          string        // SQLite transcript archive ("" = disabled)
	ArchiveTTL           time.Duration // 0 = archived cues never expire
	UpstreamRate         float64       // YouTube requests per second
	UpstreamBurst        int
	HTTPClient           *http.Client
	BrowserClient        *stealth.BrowserClient // nil = plain HTTP client only
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (captions, server).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
