package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"hamdukhub/internal/platform/models"
)

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *models.QuoteRequest) error {
	if q.ID == "" {
		q.ID = "qt_" + uuid.NewString()
	}
	if q.Status == "" {
		q.Status = "pending"
	}
	q.CreatedAt = time.Now().Unix()

	var userID interface{}
	if q.APIUserID != "" {
		userID = q.APIUserID
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quote_requests (id, api_user_id, first_name, last_name, email, phone, service_type, project_details, budget, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, userID, q.FirstName, q.LastName, q.Email, q.Phone, q.ServiceType, q.ProjectDetails, q.Budget, q.Status, q.CreatedAt)
	return err
}

// List returns all quotes, or only those owned by ownerID when it is
// non-empty. Premium callers pass "" and see everything.
func (r *QuoteRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*models.QuoteRequest, int, error) {
	where := ""
	args := []interface{}{}
	if ownerID != "" {
		where = " WHERE api_user_id = ?"
		args = append(args, ownerID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quote_requests"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, api_user_id, first_name, last_name, email, phone, service_type, project_details, budget, status, created_at FROM quote_requests" +
		where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotes []*models.QuoteRequest
	for rows.Next() {
		q := &models.QuoteRequest{}
		var userID sql.NullString
		if err := rows.Scan(&q.ID, &userID, &q.FirstName, &q.LastName, &q.Email, &q.Phone, &q.ServiceType, &q.ProjectDetails, &q.Budget, &q.Status, &q.CreatedAt); err != nil {
			return nil, 0, err
		}
		q.APIUserID = userID.String
		quotes = append(quotes, q)
	}
	return quotes, total, rows.Err()
}
