package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/platform/config"
	"hamdukhub/internal/platform/repositories"
)

// SubmissionLimiter bounds anonymous form submissions per origin over a
// fixed window. Counters live in the database rather than process memory,
// so the bound survives restarts and holds across instances.
type SubmissionLimiter struct {
	windows *repositories.RateWindowRepository
	limit   int
	window  time.Duration
}

func NewSubmissionLimiter(windows *repositories.RateWindowRepository, cfg config.RateLimitConfig) *SubmissionLimiter {
	limit := cfg.SubmissionsPerWindow
	if limit <= 0 {
		limit = 5
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Hour
	}
	return &SubmissionLimiter{windows: windows, limit: limit, window: window}
}

func (l *SubmissionLimiter) Limit(scope string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			bucket := fmt.Sprintf("%s:%s", scope, ClientIP(r))
			windowStart := time.Now().Unix() / int64(l.window.Seconds()) * int64(l.window.Seconds())

			count, err := l.windows.Increment(r.Context(), bucket, windowStart)
			if err != nil {
				// The limiter failing must not take the endpoint down
				// with it.
				log.Error().Err(err).Str("bucket", bucket).Msg("submission window increment failed")
				next(w, r)
				return
			}

			if count > l.limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				errors.WriteError(w, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded, "Too many submissions, try again later", nil)
				return
			}

			next(w, r)
		}
	}
}
