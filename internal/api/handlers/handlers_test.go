package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	apiContext "hamdukhub/internal/api/context"
	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/models"
)

const testSchema = `
CREATE TABLE api_users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	api_key TEXT UNIQUE NOT NULL,
	role TEXT NOT NULL DEFAULT 'general',
	usage_count INTEGER NOT NULL DEFAULT 0,
	usage_limit INTEGER NOT NULL DEFAULT 1000,
	subscription_status TEXT NOT NULL DEFAULT 'active',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE usage_logs (
	id TEXT PRIMARY KEY,
	api_user_id TEXT,
	api_key TEXT NOT NULL,
	endpoint TEXT NOT NULL,
	method TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	latency_ms INTEGER NOT NULL,
	ip_address TEXT,
	user_agent TEXT,
	os TEXT,
	browser TEXT,
	created_at INTEGER NOT NULL
);
CREATE TABLE content_items (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT UNIQUE NOT NULL,
	content TEXT NOT NULL,
	category TEXT NOT NULL,
	featured INTEGER NOT NULL DEFAULT 0,
	created_by TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE courses (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT,
	description TEXT,
	instructor_name TEXT NOT NULL,
	category TEXT NOT NULL,
	level TEXT NOT NULL,
	price REAL NOT NULL,
	featured INTEGER NOT NULL DEFAULT 0,
	created_by TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX idx_courses_slug ON courses(slug) WHERE slug != '';
CREATE TABLE products (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT,
	description TEXT,
	category TEXT NOT NULL,
	price REAL NOT NULL,
	featured INTEGER NOT NULL DEFAULT 0,
	created_by TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX idx_products_slug ON products(slug) WHERE slug != '';
CREATE TABLE quote_requests (
	id TEXT PRIMARY KEY,
	api_user_id TEXT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	service_type TEXT NOT NULL,
	project_details TEXT NOT NULL,
	budget TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at INTEGER NOT NULL
);
CREATE TABLE va_bookings (
	id TEXT PRIMARY KEY,
	api_user_id TEXT NOT NULL,
	service_type TEXT NOT NULL,
	description TEXT NOT NULL,
	duration_hours REAL NOT NULL,
	hourly_rate REAL NOT NULL,
	total_cost REAL NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at INTEGER NOT NULL
);
CREATE TABLE job_applications (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	position TEXT NOT NULL,
	cover_letter TEXT NOT NULL,
	resume_url TEXT,
	status TEXT NOT NULL DEFAULT 'received',
	created_at INTEGER NOT NULL
);
CREATE TABLE newsletter_subscribers (
	id TEXT PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	source TEXT,
	created_at INTEGER NOT NULL
);
CREATE TABLE submission_windows (
	bucket TEXT NOT NULL,
	window_start INTEGER NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (bucket, window_start)
);
`

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return database.NewWrapper(db)
}

// withIdentity injects a validated account the way the key middleware does.
func withIdentity(req *http.Request, id, role string) *http.Request {
	identity := &models.APIUser{ID: id, Email: "user@hamdukhub.test", Role: role, UsageLimit: 1000}
	return req.WithContext(context.WithValue(req.Context(), apiContext.Identity, identity))
}

type testEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Message    string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode envelope: %v\nbody: %s", err, rr.Body.String())
	}
	return env
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errors.ErrorResponse {
	t.Helper()
	var resp errors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error body: %v\nbody: %s", err, rr.Body.String())
	}
	return resp
}
