package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/bazar-backend/internal/order"
	"github.com/vasiliy-maslov/bazar-backend/internal/product"
)

// OrderHandler exposes the order/payment orchestrator over HTTP: checkout,
// order lookup, and the gateway's success/fail callbacks.
type OrderHandler struct {
	svc           order.Service
	validate      *validator.Validate
	clientBaseURL string
}

func NewOrderHandler(svc order.Service, clientBaseURL string) *OrderHandler {
	return &OrderHandler{
		svc:           svc,
		validate:      validator.New(),
		clientBaseURL: clientBaseURL,
	}
}

type CheckoutRequest struct {
	ProductID string   `json:"productId" validate:"required,uuid4"`
	Count     int      `json:"count" validate:"required,gte=1"`
	Title     string   `json:"title" validate:"required"`
	Category  string   `json:"category" validate:"required"`
	UserName  string   `json:"userName" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Colors    []string `json:"colorsArray"`
	City      string   `json:"city" validate:"required"`
	Address   string   `json:"address" validate:"required"`
	ZipCode   string   `json:"zipCode" validate:"required"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// Checkout handles POST /order.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithValidationErrors(w, err)
		return
	}

	productID, err := uuid.FromString(req.ProductID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	result, err := h.svc.Checkout(r.Context(), order.CheckoutRequest{
		ProductID: productID,
		Count:     req.Count,
		Title:     req.Title,
		Category:  req.Category,
		UserName:  req.UserName,
		Email:     req.Email,
		Colors:    req.Colors,
		City:      req.City,
		Address:   req.Address,
		ZipCode:   req.ZipCode,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initiate checkout")

		switch {
		case errors.Is(err, product.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, order.ErrInvalidCount):
			respondWithError(w, http.StatusBadRequest, order.ErrInvalidCount.Error())
		case errors.Is(err, order.ErrGatewayFailed):
			respondWithError(w, http.StatusInternalServerError, "failed to create payment session")
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, CheckoutResponse{URL: result.URL})
}

// GetOrdered handles GET /ordered?transactionId=...
func (h *OrderHandler) GetOrdered(w http.ResponseWriter, r *http.Request) {
	transactionID := r.URL.Query().Get("transactionId")
	if transactionID == "" {
		respondWithError(w, http.StatusBadRequest, "transactionId is required")
		return
	}

	o, err := h.svc.GetByTransactionID(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("Failed to fetch order")
		respondWithError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

// PaymentSuccess handles POST /payment/success/{transactionId}.
func (h *OrderHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")

	err := h.svc.ReconcileSuccess(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("Failed to reconcile success callback")
		respondWithError(w, http.StatusInternalServerError, "failed to process payment")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/payment/success/%s", h.clientBaseURL, transactionID), http.StatusSeeOther)
}

// PaymentFail handles POST /payment/fail/{transactionId}. The redirect is
// issued only when a pending order was actually removed.
func (h *OrderHandler) PaymentFail(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")

	err := h.svc.ReconcileFailure(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("Failed to reconcile fail callback")
		respondWithError(w, http.StatusInternalServerError, "failed to process payment")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/payment/fail/%s", h.clientBaseURL, transactionID), http.StatusSeeOther)
}
