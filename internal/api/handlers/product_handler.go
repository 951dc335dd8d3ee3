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

type ProductHandler struct {
	db *database.DB
}

func NewProductHandler(db *database.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	f := catalogFilter(r)
	f.Limit = limit
	f.Offset = offset

	repo := repositories.NewProductRepository(h.db.DB)
	products, total, err := repo.List(r.Context(), f)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load products", nil)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}

	writeData(w, http.StatusOK, products, &Pagination{Page: page, Limit: limit, Total: total}, "")
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req struct {
		Title       string  `json:"title"`
		Slug        string  `json:"slug"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		Featured    bool    `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	missing := missingFields(map[string]string{
		"title":    req.Title,
		"category": req.Category,
	})
	if req.Price <= 0 {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Missing required fields", missing)
		return
	}

	product := &models.Product{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Featured:    req.Featured,
	}
	if identity != nil {
		product.CreatedBy = identity.ID
	}

	repo := repositories.NewProductRepository(h.db.DB)
	if err := repo.Create(r.Context(), product); err != nil {
		if repositories.IsUniqueViolation(err) {
			errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, "Product with this slug already exists", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create product", nil)
		return
	}

	writeData(w, http.StatusCreated, product, nil, "Product created")
}
