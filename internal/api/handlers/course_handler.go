package handlers

import (
	"encoding/json"
	"net/http"

	"hamdukhub/internal/api/middleware"
	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

type CourseHandler struct {
	db *database.DB
}

func NewCourseHandler(db *database.DB) *CourseHandler {
	return &CourseHandler{db: db}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	f := catalogFilter(r)
	f.Limit = limit
	f.Offset = offset

	repo := repositories.NewCourseRepository(h.db.DB)
	courses, total, err := repo.List(r.Context(), f)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load courses", nil)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	writeData(w, http.StatusOK, courses, &Pagination{Page: page, Limit: limit, Total: total}, "")
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req struct {
		Title          string  `json:"title"`
		Slug           string  `json:"slug"`
		Description    string  `json:"description"`
		InstructorName string  `json:"instructor_name"`
		Category       string  `json:"category"`
		Level          string  `json:"level"`
		Price          float64 `json:"price"`
		Featured       bool    `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	missing := missingFields(map[string]string{
		"title":           req.Title,
		"instructor_name": req.InstructorName,
		"category":        req.Category,
		"level":           req.Level,
	})
	if req.Price <= 0 {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Missing required fields", missing)
		return
	}

	course := &models.Course{
		Title:          req.Title,
		Slug:           req.Slug,
		Description:    req.Description,
		InstructorName: req.InstructorName,
		Category:       req.Category,
		Level:          req.Level,
		Price:          req.Price,
		Featured:       req.Featured,
	}
	if identity != nil {
		course.CreatedBy = identity.ID
	}

	repo := repositories.NewCourseRepository(h.db.DB)
	if err := repo.Create(r.Context(), course); err != nil {
		if repositories.IsUniqueViolation(err) {
			errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, "Course with this slug already exists", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create course", nil)
		return
	}

	writeData(w, http.StatusCreated, course, nil, "Course created")
}
