package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/bazar-backend/internal/auth"
	"github.com/vasiliy-maslov/bazar-backend/internal/cart"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Count     int    `json:"count"`
	Color     string `json:"color"`
}

func authenticatedUserID(r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	parsed, err := uuid.FromString(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

// AddItem handles POST /api/cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.FromString(req.ProductID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	item, err := h.svc.AddItem(r.Context(), &cart.Item{
		UserID:    userID,
		ProductID: productID,
		Count:     req.Count,
		Color:     req.Color,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to add cart item")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

// ListItems handles GET /api/cart.
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	items, err := h.svc.ListItems(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("Failed to list cart items")
		respondWithError(w, http.StatusInternalServerError, "failed to list cart items")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

// RemoveItem handles DELETE /api/cart/{itemId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	itemID, err := uuid.FromString(chi.URLParam(r, "itemId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), itemID, userID); err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "cart item not found")
			return
		}
		log.Error().Err(err).Stringer("item_id", itemID).Msg("Failed to remove cart item")
		respondWithError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "cart item removed"})
}
