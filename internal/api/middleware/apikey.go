package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"hamdukhub/internal/access"
	apiContext "hamdukhub/internal/api/context"
	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/platform/models"
)

// KeyAuth gates routes on the x-api-key header and accounts every call
// that reached the validator, including rejected ones.
type KeyAuth struct {
	validator *access.KeyValidator
	recorder  *access.Recorder
}

func NewKeyAuth(validator *access.KeyValidator, recorder *access.Recorder) *KeyAuth {
	return &KeyAuth{validator: validator, recorder: recorder}
}

// Require rejects requests without a valid key. Validation charges quota
// before the handler runs, so a handler that later fails (or a role gate
// that denies) has still consumed a call.
func (m *KeyAuth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.gate(w, r, next, false)
	}
}

// Optional lets keyless requests straight through, anonymous and
// unaccounted. Presenting a key escalates the request: it must then be
// valid, and the call is charged and logged even though the same fetch
// would have succeeded without any key.
func (m *KeyAuth) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") == "" {
			next(w, r)
			return
		}
		m.gate(w, r, next, true)
	}
}

func (m *KeyAuth) gate(w http.ResponseWriter, r *http.Request, next http.HandlerFunc, optional bool) {
	start := time.Now()
	key := r.Header.Get("x-api-key")

	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

	identity, err := m.validator.Validate(r.Context(), key)
	if err != nil {
		switch err {
		case access.ErrMissingKey:
			errors.WriteError(sw, http.StatusUnauthorized, errors.ErrCodeUnauthorized, err.Error(), nil)
		case access.ErrInvalidKey:
			errors.WriteError(sw, http.StatusUnauthorized, errors.ErrCodeUnauthorized, err.Error(), nil)
		case access.ErrLimitExceeded:
			errors.WriteError(sw, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded, err.Error(), nil)
		default:
			errors.WriteError(sw, http.StatusInternalServerError, errors.ErrCodeInternal, "Internal server error", nil)
		}
		m.account(r, sw, start, key, nil)
		return
	}

	ctx := context.WithValue(r.Context(), apiContext.Identity, identity)
	next(sw, r.WithContext(ctx))
	m.account(r, sw, start, key, identity)
}

func (m *KeyAuth) account(r *http.Request, sw *statusWriter, start time.Time, key string, identity *models.APIUser) {
	entry := access.Entry{
		APIKey:    key,
		Endpoint:  r.URL.Path,
		Method:    r.Method,
		Status:    sw.status,
		Latency:   time.Since(start),
		IPAddress: ClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if identity != nil {
		entry.IdentityID = identity.ID
	}
	m.recorder.Record(entry)
}

// GetIdentity retrieves the validated account from the request context.
func GetIdentity(ctx context.Context) (*models.APIUser, bool) {
	identity, ok := ctx.Value(apiContext.Identity).(*models.APIUser)
	return identity, ok
}

// ClientIP prefers the forwarding headers set by the edge proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wrote {
		w.status = status
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}
