package handler

import (
	"errors"
	"net/http"

	"github.com/templui/brainbox/internal/ctxkeys"
	"github.com/templui/brainbox/internal/service"
)

type MeHandler struct {
	userService *service.UserService
}

func NewMeHandler(userService *service.UserService) *MeHandler {
	return &MeHandler{
		userService: userService,
	}
}

type updateMeRequest struct {
	DisplayName string `json:"displayName"`
}

func (h *MeHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	user, err := h.userService.ByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Token outlived its account
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternal(w, "failed to load user", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *MeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req updateMeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateDisplayName(r.Context(), userID, req.DisplayName)
	if err != nil {
		if writeValidation(w, err) {
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternal(w, "failed to update display name", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
