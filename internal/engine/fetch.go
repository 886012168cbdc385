package engine

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/cenkalti/backoff/v5"
)

// newScrapeClient creates an HTTP client with settings suited for fetching
// YouTube watch pages.
func newScrapeClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 15 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			return nil
		},
	}
}

// FetchPage performs an HTTP GET with rotating User-Agent, browser-like
// Accept headers, and exponential backoff, capping the body at maxBytes.
//
// When a browser-fingerprint client is configured it is tried first; watch
// pages served to a plain Go TLS stack occasionally omit the player response.
func FetchPage(ctx context.Context, pageURL string, maxBytes int64) ([]byte, error) {
	if bc := Cfg.BrowserClient; bc != nil {
		body, _, status, err := bc.Do(http.MethodGet, pageURL, stealth.ChromeHeaders(), nil)
		if err == nil && status == http.StatusOK {
			return capBytes(body, maxBytes), nil
		}
		slog.Debug("browser client fetch failed, using plain client",
			slog.Int("status", status), slog.Any("error", err))
	}

	client := Cfg.HTTPClient
	if client == nil {
		client = newScrapeClient()
	}

	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		req.Header.Set("User-Agent", stealth.RandomUserAgent())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip, deflate")

		resp, err := client.Do(req)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		defer resp.Body.Close()

		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		return readBody(resp, maxBytes)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(3),
		backoff.WithMaxElapsedTime(30*time.Second))
}

// readBody reads the response body up to maxBytes, handling gzip
// decompression when the server did not transparently decode it.
func readBody(resp *http.Response, maxBytes int64) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes)
	}
	return io.ReadAll(r)
}

func capBytes(b []byte, maxBytes int64) []byte {
	if maxBytes > 0 && int64(len(b)) > maxBytes {
		return b[:maxBytes]
	}
	return b
}
