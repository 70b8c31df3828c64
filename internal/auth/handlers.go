package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"calculation-console/internal/handlers"
	"calculation-console/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Credentials is the JSON body of register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is returned by register.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// TokenResponse is returned by login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Handler serves the /auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the auth endpoints under /auth.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerWithTrace(r.Context())

	var req Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword):
		handlers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrEmailTaken):
		handlers.WriteError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		logger.Error("register failed", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	logger.Info("user registered", zap.Uint("user_id", u.ID))
	handlers.WriteJSON(w, http.StatusCreated, UserResponse{ID: u.ID, Email: u.Email})
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerWithTrace(r.Context())

	var req Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		handlers.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		logger.Error("login failed", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
