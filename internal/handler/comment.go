package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/bazar-backend/internal/comment"
)

type CommentHandler struct {
	svc comment.Service
}

func NewCommentHandler(svc comment.Service) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type AddCommentRequest struct {
	ProductID string  `json:"productId"`
	ParentID  *string `json:"parentId,omitempty"`
	Author    string  `json:"author"`
	Body      string  `json:"body"`
}

// AddComment handles POST /api/comments.
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.FromString(req.ProductID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	c := comment.Comment{
		ProductID: productID,
		Author:    req.Author,
		Body:      req.Body,
	}
	if req.ParentID != nil {
		parentID, err := uuid.FromString(*req.ParentID)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid parentId")
			return
		}
		c.ParentID = &parentID
	}

	created, err := h.svc.AddComment(r.Context(), &c)
	if err != nil {
		log.Error().Err(err).Msg("Failed to add comment")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// ListComments handles GET /api/comments/{productId}.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.FromString(chi.URLParam(r, "productId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	comments, err := h.svc.ListByProduct(r.Context(), productID)
	if err != nil {
		log.Error().Err(err).Stringer("product_id", productID).Msg("Failed to list comments")
		respondWithError(w, http.StatusInternalServerError, "failed to list comments")
		return
	}

	respondWithJSON(w, http.StatusOK, comments)
}

// DeleteComment handles DELETE /api/comments/{id}.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.svc.DeleteComment(r.Context(), id); err != nil {
		if errors.Is(err, comment.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "comment not found")
			return
		}
		log.Error().Err(err).Stringer("comment_id", id).Msg("Failed to delete comment")
		respondWithError(w, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
