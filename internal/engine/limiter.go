package engine

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// upstreamLimiter throttles outbound YouTube requests. Header and proxy
// rotation helps against fingerprinting, not against plain request-rate
// blocking, so the limiter applies regardless of the client used.
var upstreamLimiter *rate.Limiter

// InitLimiter configures the upstream rate limiter from Cfg.
// A non-positive rate disables throttling.
func InitLimiter() {
	if Cfg.UpstreamRate <= 0 {
		upstreamLimiter = nil
		return
	}
	burst := Cfg.UpstreamBurst
	if burst < 1 {
		burst = 1
	}
	upstreamLimiter = rate.NewLimiter(rate.Limit(Cfg.UpstreamRate), burst)
	slog.Info("upstream limiter configured",
		slog.Float64("rps", Cfg.UpstreamRate), slog.Int("burst", burst))
}

// WaitUpstream blocks until the limiter allows another upstream request,
// or the context is cancelled.
func WaitUpstream(ctx context.Context) error {
	if upstreamLimiter == nil {
		return nil
	}
	return upstreamLimiter.Wait(ctx)
}
