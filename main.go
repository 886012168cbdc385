// youtube-transcript-microservice — fetches YouTube caption tracks and
// renders them as timestamp-grouped transcript text.
//
// Exposes a small HTTP API: POST /transcript takes a video URL and grouping
// options, GET /transcript/:video_id takes the same options as query
// parameters. See internal/server for the surface and internal/transcript
// for the grouping engine.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"

	"github.com/saulnewbury/youtube-transcript-microservice/internal/engine"
	"github.com/saulnewbury/youtube-transcript-microservice/internal/server"
)

var (
	version = "dev"
	port    = env.Str("PORT", "8000")
)

func main() {
	initEngine()

	slog.Info("starting youtube-transcript-microservice",
		slog.String("version", version),
		slog.String("port", port),
	)

	srv := server.New(server.Options{
		Addr:           ":" + port,
		AllowedOrigins: env.List("ALLOWED_ORIGINS", "*"),
		Debug:          env.Str("DEBUG", "") != "",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func initEngine() {
	c := engine.Config{
		PreferredLanguages:   env.List("PREFERRED_LANGUAGES", "en"),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 20*time.Second),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		ArchivePath:          env.Str("ARCHIVE_PATH", "data/transcripts.db"),
		ArchiveTTL:           env.Duration("ARCHIVE_TTL", 0),
		UpstreamRate:         env.Float("YT_RATE_LIMIT", 2.0),
		UpstreamBurst:        env.Int("YT_RATE_BURST", 4),
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(20))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Warn("stealth client init failed, using plain HTTP client", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	engine.Init(c)
	engine.InitLimiter()

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
