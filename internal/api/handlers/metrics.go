package handlers

import (
	"fmt"
	"net/http"
	"time"

	"hamdukhub/internal/access"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/repositories"
)

// MetricsHandler exposes a small plain-text snapshot. Not a full metrics
// pipeline, just enough for an uptime probe and a request-rate graph.
type MetricsHandler struct {
	db       *database.DB
	recorder *access.Recorder
}

func NewMetricsHandler(db *database.DB, recorder *access.Recorder) *MetricsHandler {
	return &MetricsHandler{db: db, recorder: recorder}
}

func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	logs := repositories.NewUsageLogRepository(h.db.DB)

	dayAgo := time.Now().Add(-24 * time.Hour).Unix()
	calls, err := logs.CountSince(r.Context(), dayAgo)
	if err != nil {
		calls = -1
	}

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "# HELP hamdukhub_up Is the server up\n")
	fmt.Fprintf(w, "# TYPE hamdukhub_up gauge\n")
	fmt.Fprintf(w, "hamdukhub_up 1\n")
	fmt.Fprintf(w, "# HELP hamdukhub_api_calls_24h Accounted API calls in the last 24h\n")
	fmt.Fprintf(w, "# TYPE hamdukhub_api_calls_24h gauge\n")
	fmt.Fprintf(w, "hamdukhub_api_calls_24h %d\n", calls)
	fmt.Fprintf(w, "# HELP hamdukhub_usage_log_dropped_total Usage log entries dropped by the recorder\n")
	fmt.Fprintf(w, "# TYPE hamdukhub_usage_log_dropped_total counter\n")
	fmt.Fprintf(w, "hamdukhub_usage_log_dropped_total %d\n", h.recorder.Dropped())
}
