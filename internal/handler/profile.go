package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/devconnector-go/internal/middleware"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/service"
)

// ProfileHandler handles HTTP requests for profiles and their entries.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleGetOwn handles GET /api/profile/me requests.
func (h *ProfileHandler) HandleGetOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoProfile) {
			writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		serverError(w, r, msgServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleUpsert handles POST /api/profile requests.
func (h *ProfileHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req model.ProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.service.Upsert(r.Context(), userID, req)
	if err != nil {
		if !writeValidation(w, err) {
			serverError(w, r, msgWriteServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleList handles GET /api/profile requests.
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context())
	if err != nil {
		serverError(w, r, msgServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// HandleGetByUserID handles GET /api/profile/user/{user_id} requests.
func (h *ProfileHandler) HandleGetByUserID(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetByUserID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "Profile not found")
			return
		}
		serverError(w, r, msgServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /api/profile requests. It removes the caller's
// profile and user and always answers 200.
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	removed, err := h.service.Delete(r.Context(), userID)
	if err != nil {
		serverError(w, r, msgServerError, err)
		return
	}

	if !removed {
		writeMsg(w, http.StatusOK, "No user to be removed")
		return
	}
	writeMsg(w, http.StatusOK, "User removed")
}

// HandleAddExperience handles PUT /api/profile/experience requests.
func (h *ProfileHandler) HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req model.ExperienceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.service.AddExperience(r.Context(), userID, req)
	if err != nil {
		if !writeValidation(w, err) {
			serverError(w, r, msgWriteServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleDeleteExperience handles DELETE /api/profile/experience/{exp_id} requests.
func (h *ProfileHandler) HandleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	p, err := h.service.RemoveExperience(r.Context(), userID, chi.URLParam(r, "exp_id"))
	if err != nil {
		if errors.Is(err, service.ErrExperienceNotFound) {
			writeMsg(w, http.StatusOK, "No experience found")
			return
		}
		serverError(w, r, msgWriteServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleAddEducation handles PUT /api/profile/education requests.
func (h *ProfileHandler) HandleAddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req model.EducationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.service.AddEducation(r.Context(), userID, req)
	if err != nil {
		if !writeValidation(w, err) {
			serverError(w, r, msgWriteServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleDeleteEducation handles DELETE /api/profile/education/{edu_id} requests.
func (h *ProfileHandler) HandleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	p, err := h.service.RemoveEducation(r.Context(), userID, chi.URLParam(r, "edu_id"))
	if err != nil {
		if errors.Is(err, service.ErrEducationNotFound) {
			writeMsg(w, http.StatusOK, "No education found")
			return
		}
		serverError(w, r, msgWriteServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, access denied")
	}
	return userID, ok
}
