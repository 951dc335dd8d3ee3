package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"hamdukhub/internal/platform/models"
)

type UsageLogRepository struct {
	db *sql.DB
}

func NewUsageLogRepository(db *sql.DB) *UsageLogRepository {
	return &UsageLogRepository{db: db}
}

func (r *UsageLogRepository) Insert(ctx context.Context, entry *models.UsageLog) error {
	if entry.ID == "" {
		entry.ID = "log_" + uuid.NewString()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	var userID interface{}
	if entry.APIUserID != "" {
		userID = entry.APIUserID
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usage_logs (id, api_user_id, api_key, endpoint, method, status_code, latency_ms, ip_address, user_agent, os, browser, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, userID, entry.APIKey, entry.Endpoint, entry.Method, entry.StatusCode, entry.LatencyMs, entry.IPAddress, entry.UserAgent, entry.OS, entry.Browser, entry.CreatedAt)
	return err
}

func (r *UsageLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.UsageLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, api_user_id, api_key, endpoint, method, status_code, latency_ms, ip_address, user_agent, os, browser, created_at
		FROM usage_logs WHERE api_user_id = ? ORDER BY created_at DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.UsageLog
	for rows.Next() {
		l := &models.UsageLog{}
		var uid sql.NullString
		if err := rows.Scan(&l.ID, &uid, &l.APIKey, &l.Endpoint, &l.Method, &l.StatusCode, &l.LatencyMs, &l.IPAddress, &l.UserAgent, &l.OS, &l.Browser, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.APIUserID = uid.String
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *UsageLogRepository) CountSince(ctx context.Context, since int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usage_logs WHERE created_at >= ?`, since).Scan(&n)
	return n, err
}

func (r *UsageLogRepository) PurgeBefore(ctx context.Context, cutoff int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usage_logs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
