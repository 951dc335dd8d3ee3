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

type ContentHandler struct {
	db *database.DB
}

func NewContentHandler(db *database.DB) *ContentHandler {
	return &ContentHandler{db: db}
}

func catalogFilter(r *http.Request) repositories.CatalogFilter {
	f := repositories.CatalogFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	if v := r.URL.Query().Get("featured"); v != "" {
		featured := v == "true" || v == "1"
		f.Featured = &featured
	}
	return f
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	f := catalogFilter(r)
	f.Limit = limit
	f.Offset = offset

	repo := repositories.NewContentRepository(h.db.DB)
	items, total, err := repo.List(r.Context(), f)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load content", nil)
		return
	}
	if items == nil {
		items = []*models.ContentItem{}
	}

	writeData(w, http.StatusOK, items, &Pagination{Page: page, Limit: limit, Total: total}, "")
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req struct {
		Title    string `json:"title"`
		Slug     string `json:"slug"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Featured bool   `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if missing := missingFields(map[string]string{
		"title":    req.Title,
		"slug":     req.Slug,
		"content":  req.Content,
		"category": req.Category,
	}); len(missing) > 0 {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Missing required fields", missing)
		return
	}

	item := &models.ContentItem{
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		Category: req.Category,
		Featured: req.Featured,
	}
	if identity != nil {
		item.CreatedBy = identity.ID
	}

	repo := repositories.NewContentRepository(h.db.DB)
	if err := repo.Create(r.Context(), item); err != nil {
		if repositories.IsUniqueViolation(err) {
			errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, "Content with this slug already exists", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create content", nil)
		return
	}

	writeData(w, http.StatusCreated, item, nil, "Content created")
}
