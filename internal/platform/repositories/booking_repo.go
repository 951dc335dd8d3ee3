package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"hamdukhub/internal/platform/models"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *models.VABooking) error {
	if b.ID == "" {
		b.ID = "vab_" + uuid.NewString()
	}
	if b.Status == "" {
		b.Status = "pending"
	}
	b.CreatedAt = time.Now().Unix()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO va_bookings (id, api_user_id, service_type, description, duration_hours, hourly_rate, total_cost, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.APIUserID, b.ServiceType, b.Description, b.DurationHours, b.HourlyRate, b.TotalCost, b.Status, b.CreatedAt)
	return err
}

// List mirrors QuoteRepository.List: empty ownerID means unscoped.
func (r *BookingRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*models.VABooking, int, error) {
	where := ""
	args := []interface{}{}
	if ownerID != "" {
		where = " WHERE api_user_id = ?"
		args = append(args, ownerID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM va_bookings"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, api_user_id, service_type, description, duration_hours, hourly_rate, total_cost, status, created_at FROM va_bookings" +
		where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []*models.VABooking
	for rows.Next() {
		b := &models.VABooking{}
		if err := rows.Scan(&b.ID, &b.APIUserID, &b.ServiceType, &b.Description, &b.DurationHours, &b.HourlyRate, &b.TotalCost, &b.Status, &b.CreatedAt); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, total, rows.Err()
}
