package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hamdukhub/internal/platform/config"
)

// Event is the payload delivered to every configured receiver when a
// submission lands.
type Event struct {
	ID        string      `json:"id"`
	Event     string      `json:"event"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Dispatcher fans submission events out to configured receiver URLs.
// Delivery is fire-and-forget; a failed receiver is logged and skipped,
// never surfaced to the submitting client.
type Dispatcher struct {
	urls    []string
	secret  string
	timeout time.Duration
	client  *http.Client
}

func NewDispatcher(cfg config.NotifyConfig) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		urls:    cfg.URLs,
		secret:  cfg.Secret,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

func (d *Dispatcher) Dispatch(eventType string, data interface{}) {
	if len(d.urls) == 0 {
		return
	}

	event := &Event{
		ID:        "evt_" + uuid.NewString(),
		Event:     eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	for _, url := range d.urls {
		go d.deliver(url, event)
	}
}

func (d *Dispatcher) deliver(url string, event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event", event.Event).Msg("failed to encode notification")
		return
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to build notification request")
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hamduk-Signature", Sign(d.secret, payload))
	req.Header.Set("X-Hamduk-Event", event.Event)
	req.Header.Set("X-Hamduk-Delivery", event.ID)

	resp, err := d.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Str("event", event.Event).Msg("notification delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Warn().Str("url", url).Str("event", event.Event).Str("status", fmt.Sprintf("HTTP %d", resp.StatusCode)).Msg("notification rejected by receiver")
	}
}
