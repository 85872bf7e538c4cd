package handler

import (
	"errors"
	"net/http"

	"github.com/devconnector/devconnector-go/internal/middleware"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleLogin handles POST /api/auth requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case writeValidation(w, err):
		case errors.Is(err, service.ErrInvalidCredentials):
			writeErrors(w, http.StatusBadRequest, model.FieldError{Msg: "Invalid Credentials"})
		default:
			serverError(w, r, msgServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /api/auth requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, access denied")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// A valid token for a deleted user resolves to null.
			writeJSON(w, http.StatusOK, nil)
			return
		}
		serverError(w, r, msgServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
