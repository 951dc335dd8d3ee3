package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hamdukhub/internal/platform/models"
)

type APIUserRepository struct {
	db *sql.DB
}

func NewAPIUserRepository(db *sql.DB) *APIUserRepository {
	return &APIUserRepository{db: db}
}

func (r *APIUserRepository) Create(ctx context.Context, user *models.APIUser) error {
	if user.ID == "" {
		user.ID = "usr_" + uuid.NewString()
	}
	if user.APIKey == "" {
		user.APIKey = GenerateKey()
	}
	now := time.Now().Unix()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO api_users (id, email, api_key, role, usage_count, usage_limit, subscription_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.APIKey, user.Role, user.UsageCount, user.UsageLimit, user.SubscriptionStatus, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *APIUserRepository) GetByKey(ctx context.Context, key string) (*models.APIUser, error) {
	user := &models.APIUser{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, api_key, role, usage_count, usage_limit, subscription_status, created_at, updated_at
		FROM api_users WHERE api_key = ?
	`, key).Scan(&user.ID, &user.Email, &user.APIKey, &user.Role, &user.UsageCount, &user.UsageLimit, &user.SubscriptionStatus, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *APIUserRepository) GetByID(ctx context.Context, id string) (*models.APIUser, error) {
	user := &models.APIUser{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, api_key, role, usage_count, usage_limit, subscription_status, created_at, updated_at
		FROM api_users WHERE id = ?
	`, id).Scan(&user.ID, &user.Email, &user.APIKey, &user.Role, &user.UsageCount, &user.UsageLimit, &user.SubscriptionStatus, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// ConsumeQuota charges one call against the user's limit. The conditional
// UPDATE is the admission decision: zero rows affected means the counter
// already reached the limit, and no interleaving of concurrent calls can
// admit more than usage_limit requests in total.
func (r *APIUserRepository) ConsumeQuota(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE api_users SET usage_count = usage_count + 1, updated_at = ?
		WHERE id = ? AND usage_count < usage_limit
	`, time.Now().Unix(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// RotateKey replaces the user's key with a fresh opaque value. The old key
// stops resolving immediately; usage-log rows keep the old value verbatim.
func (r *APIUserRepository) RotateKey(ctx context.Context, id string) (string, error) {
	key := GenerateKey()
	res, err := r.db.ExecContext(ctx, `
		UPDATE api_users SET api_key = ?, updated_at = ? WHERE id = ?
	`, key, time.Now().Unix(), id)
	if err != nil {
		return "", err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", sql.ErrNoRows
	}
	return key, nil
}

// ResetAllUsage starts a new accounting period for every user.
func (r *APIUserRepository) ResetAllUsage(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE api_users SET usage_count = 0, updated_at = ? WHERE usage_count > 0
	`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func GenerateKey() string {
	return fmt.Sprintf("hd_live_%s", uuid.NewString())
}
