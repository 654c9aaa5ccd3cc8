package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// healthPath is never throttled so that probes keep working under load.
const healthPath = "/api/health"

type rateLimiter interface {
	Allow() bool
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *limiterAdapter) Allow() bool {
	if l == nil || l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

// retryAfterSeconds estimates how long a client should wait for the next token.
func retryAfterSeconds(limiter rateLimiter) int {
	adapter, ok := limiter.(*limiterAdapter)
	if !ok || adapter.limiter == nil || adapter.limiter.Limit() <= 0 {
		return 1
	}
	seconds := int(1/float64(adapter.limiter.Limit()) + 0.999)
	return max(seconds, 1)
}

func rateLimitMiddleware(logger *zap.Logger, limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == healthPath || limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		logger.Warn("request throttled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(limiter)))
		writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded",
			"wait for the Retry-After interval before submitting another load")
	})
}
