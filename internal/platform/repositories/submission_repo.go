package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"hamdukhub/internal/platform/models"
)

// SubmissionRepository backs the anonymous form endpoints: job
// applications and newsletter signups.
type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	if app.ID == "" {
		app.ID = "app_" + uuid.NewString()
	}
	if app.Status == "" {
		app.Status = "received"
	}
	app.CreatedAt = time.Now().Unix()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO job_applications (id, full_name, email, phone, position, cover_letter, resume_url, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, app.ID, app.FullName, app.Email, app.Phone, app.Position, app.CoverLetter, app.ResumeURL, app.Status, app.CreatedAt)
	return err
}

// HasRecentApplication implements the 30-day dedup window: the same email
// applying for the same position inside the window is a conflict. Quotes
// deliberately have no such window.
func (r *SubmissionRepository) HasRecentApplication(ctx context.Context, email, position string, since int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM job_applications WHERE email = ? AND position = ? AND created_at >= ?
	`, email, position, since).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SubmissionRepository) Subscribe(ctx context.Context, sub *models.NewsletterSubscriber) error {
	if sub.ID == "" {
		sub.ID = "nws_" + uuid.NewString()
	}
	sub.CreatedAt = time.Now().Unix()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO newsletter_subscribers (id, email, source, created_at)
		VALUES (?, ?, ?, ?)
	`, sub.ID, sub.Email, sub.Source, sub.CreatedAt)
	return err
}
