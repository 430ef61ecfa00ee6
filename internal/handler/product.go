package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/bazar-backend/internal/product"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// CreateProduct handles POST /createProduct.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateProduct(r.Context(), &p)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// ListProducts handles GET /api/products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		respondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

// GetProductByID handles GET /api/product/{id}.
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.svc.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("Failed to get product")
		respondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

type buyResponse struct {
	product.Product
	Count int `json:"count"`
}

// Buy handles GET /api/buy/{id}?count=N: the product plus the requested count,
// as the client-side checkout page expects.
func (h *ProductHandler) Buy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count < 1 {
		respondWithError(w, http.StatusBadRequest, "count must be a positive integer")
		return
	}

	p, err := h.svc.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("Failed to get product for buy")
		respondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	respondWithJSON(w, http.StatusOK, buyResponse{Product: *p, Count: count})
}

// ListCategories handles GET /api/categories: distinct category names, sorted.
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		respondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	respondWithJSON(w, http.StatusOK, categories)
}

// SearchByCategory handles GET /api/search/categories?categories=...
func (h *ProductHandler) SearchByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("categories")
	if category == "" {
		respondWithError(w, http.StatusBadRequest, "categories query parameter is required")
		return
	}

	products, err := h.svc.ListProductsByCategory(r.Context(), category)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to search products by category")
		respondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}
