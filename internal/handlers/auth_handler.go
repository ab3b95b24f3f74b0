package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/santhosh-ovd/indian-dishes/server/internal/auth"
	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	authService *auth.Service
	log         *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register handles POST /api/auth/register
// - 201: {user, token}
// - 400: invalid body, validation failure or user already exists
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest

	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode register request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	res, err := h.authService.Register(r.Context(), req)
	if err != nil {
		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			WriteError(w, http.StatusBadRequest, verr.Error(), h.log)
		case errors.Is(err, auth.ErrUserExists):
			WriteError(w, http.StatusBadRequest, "User already exists", h.log)
		default:
			h.log.Error("failed to register user", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, res, h.log)
}

// Login handles POST /api/auth/login
// - 200: {user, token}
// - 401: invalid credentials
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode login request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	res, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.Info("login rejected", "email", req.Email)
			WriteError(w, http.StatusUnauthorized, "Invalid credentials", h.log)
			return
		}
		h.log.Error("failed to log in user", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, res, h.log)
}
