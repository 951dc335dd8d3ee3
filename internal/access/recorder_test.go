package access

import (
	"testing"
	"time"

	"hamdukhub/internal/platform/repositories"
)

func TestRecorder_WritesEntriesBeforeClose(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	rec := NewRecorder(repositories.NewUsageLogRepository(db), 16)

	rec.Record(Entry{
		IdentityID: "usr_abc",
		APIKey:     "hd_live_abc",
		Endpoint:   "/api/products",
		Method:     "GET",
		Status:     200,
		Latency:    12 * time.Millisecond,
		IPAddress:  "203.0.113.9",
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0",
	})
	rec.Record(Entry{
		APIKey:    "hd_live_bogus",
		Endpoint:  "/api/products",
		Method:    "POST",
		Status:    401,
		UserAgent: "curl/8.4.0",
	})
	rec.Close()

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM usage_logs`).Scan(&total); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 usage rows after Close, got %d", total)
	}

	// Rejected calls are logged too, with a null identity and the
	// presented key verbatim.
	var key string
	var os, browser string
	err := db.QueryRow(`
		SELECT api_key, os, browser FROM usage_logs WHERE api_user_id IS NULL
	`).Scan(&key, &os, &browser)
	if err != nil {
		t.Fatalf("rejected-call row missing: %v", err)
	}
	if key != "hd_live_bogus" {
		t.Errorf("api_key = %q, want presented key verbatim", key)
	}
	if browser != "CLI" {
		t.Errorf("browser = %q, want CLI for curl agent", browser)
	}
}

func TestRecorder_InsertFailureDoesNotStopDraining(t *testing.T) {
	db := setupTestDB(t)

	rec := NewRecorder(repositories.NewUsageLogRepository(db), 16)

	// Drop the table under the recorder: inserts fail from here on, but
	// Record and Close must still return normally.
	if _, err := db.Exec(`DROP TABLE usage_logs`); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	rec.Record(Entry{APIKey: "hd_live_x", Endpoint: "/api/content", Method: "GET", Status: 200})
	rec.Close()
	db.Close()
}

func TestRecorder_DropsWhenBufferFull(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// The pool has a single connection. Holding it in a transaction stalls
	// the writer goroutine, so entries pile up against the buffer.
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	rec := NewRecorder(repositories.NewUsageLogRepository(db), 1)
	for i := 0; i < 4; i++ {
		rec.Record(Entry{APIKey: "hd_live_x", Endpoint: "/api/content", Method: "GET", Status: 200})
	}

	if got := rec.Dropped(); got < 1 {
		t.Errorf("dropped = %d, want at least 1 with a stalled writer and buffer of 1", got)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
	rec.Close()
}
