package access

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hamdukhub/internal/pkg/parser"
	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

// Entry is one accounted call. IdentityID is empty when the key never
// resolved (invalid key, missing key on a key-required route).
type Entry struct {
	IdentityID string
	APIKey     string
	Endpoint   string
	Method     string
	Status     int
	Latency    time.Duration
	IPAddress  string
	UserAgent  string
}

// Recorder appends usage-log rows off the request path. Record never
// blocks: when the buffer is full the entry is dropped and counted, the
// response is not delayed. Insert failures are swallowed after an
// operational log line; logging is observability, not part of the
// request's outcome.
type Recorder struct {
	logs    *repositories.UsageLogRepository
	entries chan Entry
	done    chan struct{}

	mu      sync.Mutex
	dropped int64
}

func NewRecorder(logs *repositories.UsageLogRepository, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	r := &Recorder{
		logs:    logs,
		entries: make(chan Entry, buffer),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) Record(e Entry) {
	select {
	case r.entries <- e:
	default:
		r.mu.Lock()
		r.dropped++
		n := r.dropped
		r.mu.Unlock()
		log.Warn().Int64("dropped", n).Msg("usage recorder buffer full, entry dropped")
	}
}

// Dropped reports how many entries were discarded because the buffer was
// full. Exposed for the metrics endpoint.
func (r *Recorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close stops accepting entries and drains what is already buffered.
func (r *Recorder) Close() {
	close(r.entries)
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)

	for e := range r.entries {
		os, browser := parser.ParseUserAgent(e.UserAgent)
		row := &models.UsageLog{
			APIUserID:  e.IdentityID,
			APIKey:     e.APIKey,
			Endpoint:   e.Endpoint,
			Method:     e.Method,
			StatusCode: e.Status,
			LatencyMs:  e.Latency.Milliseconds(),
			IPAddress:  e.IPAddress,
			UserAgent:  e.UserAgent,
			OS:         os,
			Browser:    browser,
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		if err := r.logs.Insert(ctx, row); err != nil {
			log.Warn().Err(err).Str("endpoint", e.Endpoint).Msg("failed to write usage log")
		}
		cancel()
	}
}
