package access

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	// Single connection so concurrent tests serialize in the pool
	// instead of racing the in-memory database.
	db.SetMaxOpenConns(1)

	query := `
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
	`
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *sql.DB, key, role string, count, limit int) *models.APIUser {
	t.Helper()
	repo := repositories.NewAPIUserRepository(db)
	user := &models.APIUser{
		Email:              "test@hamdukhub.test",
		APIKey:             key,
		Role:               role,
		UsageCount:         count,
		UsageLimit:         limit,
		SubscriptionStatus: "active",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

func usageCount(t *testing.T, db *sql.DB, id string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT usage_count FROM api_users WHERE id = ?`, id).Scan(&n); err != nil {
		t.Fatalf("Failed to read usage count: %v", err)
	}
	return n
}

func TestValidate_MissingKey(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	v := NewKeyValidator(repositories.NewAPIUserRepository(db))

	if _, err := v.Validate(context.Background(), ""); err != ErrMissingKey {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}
}

func TestValidate_InvalidKey(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	v := NewKeyValidator(repositories.NewAPIUserRepository(db))

	if _, err := v.Validate(context.Background(), "hd_live_nope"); err != ErrInvalidKey {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestValidate_AtLimitRejectsWithoutCharging(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := seedUser(t, db, "hd_live_full", "business", 10, 10)
	v := NewKeyValidator(repositories.NewAPIUserRepository(db))

	if _, err := v.Validate(context.Background(), "hd_live_full"); err != ErrLimitExceeded {
		t.Errorf("expected ErrLimitExceeded, got %v", err)
	}
	if n := usageCount(t, db, user.ID); n != 10 {
		t.Errorf("rejected call must not charge quota: count = %d, want 10", n)
	}
}

func TestValidate_ChargesExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := seedUser(t, db, "hd_live_ok", "developer", 3, 10)
	v := NewKeyValidator(repositories.NewAPIUserRepository(db))

	got, err := v.Validate(context.Background(), "hd_live_ok")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("resolved wrong identity: %s", got.ID)
	}
	// The returned identity reflects the pre-increment counter.
	if got.UsageCount != 3 {
		t.Errorf("returned usage count = %d, want pre-increment 3", got.UsageCount)
	}
	if n := usageCount(t, db, user.ID); n != 4 {
		t.Errorf("stored usage count = %d, want 4", n)
	}
}

func TestValidate_ConcurrentAdmissionNeverOversells(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	const remaining = 3
	const attempts = 20

	user := seedUser(t, db, "hd_live_race", "general", 7, 7+remaining)
	v := NewKeyValidator(repositories.NewAPIUserRepository(db))

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := v.Validate(context.Background(), "hd_live_race")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	admitted := 0
	for err := range results {
		switch err {
		case nil:
			admitted++
		case ErrLimitExceeded:
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if admitted != remaining {
		t.Errorf("admitted %d of %d attempts, want exactly %d", admitted, attempts, remaining)
	}
	if n := usageCount(t, db, user.ID); n != 7+remaining {
		t.Errorf("final usage count = %d, want %d", n, 7+remaining)
	}
}
