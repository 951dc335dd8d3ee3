package repositories

import (
	"context"
	"database/sql"
)

// RateWindowRepository holds per-origin submission counters in the shared
// database, the same shared-counter pattern as the API quota, so the bound
// holds across running instances.
type RateWindowRepository struct {
	db *sql.DB
}

func NewRateWindowRepository(db *sql.DB) *RateWindowRepository {
	return &RateWindowRepository{db: db}
}

// Increment bumps the counter for a (bucket, window) pair and returns the
// new count. The upsert is a single atomic statement; there is no
// read-then-write gap for concurrent submissions to slip through.
func (r *RateWindowRepository) Increment(ctx context.Context, bucket string, windowStart int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO submission_windows (bucket, window_start, count) VALUES (?, ?, 1)
		ON CONFLICT(bucket, window_start) DO UPDATE SET count = count + 1
		RETURNING count
	`, bucket, windowStart).Scan(&count)
	return count, err
}

// PurgeBefore drops windows that ended before the cutoff.
func (r *RateWindowRepository) PurgeBefore(ctx context.Context, cutoff int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM submission_windows WHERE window_start < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
