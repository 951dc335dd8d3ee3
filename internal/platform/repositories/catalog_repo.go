package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"hamdukhub/internal/platform/models"
)

// CatalogFilter is shared by the three catalog tables. Zero values mean
// "no filter".
type CatalogFilter struct {
	Category string
	Featured *bool
	Search   string
	Limit    int
	Offset   int
}

func (f CatalogFilter) where(searchCols ...string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, *f.Featured)
	}
	if f.Search != "" {
		var like []string
		for _, col := range searchCols {
			like = append(like, col+" LIKE ?")
			args = append(args, "%"+f.Search+"%")
		}
		conds = append(conds, "("+strings.Join(like, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type ContentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if item.ID == "" {
		item.ID = "cnt_" + uuid.NewString()
	}
	now := time.Now().Unix()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO content_items (id, title, slug, content, category, featured, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Title, item.Slug, item.Content, item.Category, item.Featured, item.CreatedBy, item.CreatedAt, item.UpdatedAt)
	return err
}

// List returns one page plus the total row count under the same filter.
func (r *ContentRepository) List(ctx context.Context, f CatalogFilter) ([]*models.ContentItem, int, error) {
	where, args := f.where("title", "content")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_items"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, title, slug, content, category, featured, created_by, created_at, updated_at FROM content_items" +
		where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item := &models.ContentItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Slug, &item.Content, &item.Category, &item.Featured, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = "crs_" + uuid.NewString()
	}
	now := time.Now().Unix()
	course.CreatedAt = now
	course.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO courses (id, title, slug, description, instructor_name, category, level, price, featured, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, course.ID, course.Title, course.Slug, course.Description, course.InstructorName, course.Category, course.Level, course.Price, course.Featured, course.CreatedBy, course.CreatedAt, course.UpdatedAt)
	return err
}

func (r *CourseRepository) List(ctx context.Context, f CatalogFilter) ([]*models.Course, int, error) {
	where, args := f.where("title", "description", "instructor_name")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, title, slug, description, instructor_name, category, level, price, featured, created_by, created_at, updated_at FROM courses" +
		where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.InstructorName, &c.Category, &c.Level, &c.Price, &c.Featured, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		courses = append(courses, c)
	}
	return courses, total, rows.Err()
}

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = "prd_" + uuid.NewString()
	}
	now := time.Now().Unix()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, title, slug, description, category, price, featured, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, product.ID, product.Title, product.Slug, product.Description, product.Category, product.Price, product.Featured, product.CreatedBy, product.CreatedAt, product.UpdatedAt)
	return err
}

func (r *ProductRepository) List(ctx context.Context, f CatalogFilter) ([]*models.Product, int, error) {
	where, args := f.where("title", "description")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, title, slug, description, category, price, featured, created_by, created_at, updated_at FROM products" +
		where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Category, &p.Price, &p.Featured, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint, so
// handlers can answer 409 instead of 500 on duplicate slugs or emails.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
