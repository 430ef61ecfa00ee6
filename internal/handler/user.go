package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/bazar-backend/internal/auth"
	"github.com/vasiliy-maslov/bazar-backend/internal/user"
)

type UserHandler struct {
	svc      user.Service
	issuer   *auth.Issuer
	validate *validator.Validate
}

func NewUserHandler(svc user.Service, issuer *auth.Issuer) *UserHandler {
	return &UserHandler{
		svc:      svc,
		issuer:   issuer,
		validate: validator.New(),
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
	Token   string     `json:"token"`
}

// Register handles POST /api/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithValidationErrors(w, err)
		return
	}

	_, err := h.svc.Register(r.Context(), &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			respondWithError(w, http.StatusBadRequest, "user already exists")
			return
		}
		log.Error().Err(err).Msg("Failed to register user")
		respondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "user created successfully"})
}

// Login handles POST /api/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithValidationErrors(w, err)
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondWithError(w, http.StatusBadRequest, "invalid email or password")
			return
		}
		log.Error().Err(err).Msg("Failed to authenticate user")
		respondWithError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	token, err := h.issuer.Issue(u.ID.String())
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		respondWithError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{Message: "login successful", User: u, Token: token})
}

// Profile handles GET /api/user for the authenticated user.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.respondUser(w, r, func() (uuid.UUID, error) {
		id, ok := auth.UserID(r.Context())
		if !ok {
			return uuid.Nil, errors.New("no user in context")
		}
		return uuid.FromString(id)
	})
}

// GetUserByID handles GET /api/userId?_id=...
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	h.respondUser(w, r, func() (uuid.UUID, error) {
		return uuid.FromString(r.URL.Query().Get("_id"))
	})
}

func (h *UserHandler) respondUser(w http.ResponseWriter, r *http.Request, idFn func() (uuid.UUID, error)) {
	id, err := idFn()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error().Err(err).Stringer("user_id", id).Msg("Failed to fetch user")
		respondWithError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	respondWithJSON(w, http.StatusOK, u)
}
