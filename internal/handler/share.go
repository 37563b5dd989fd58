package handler

import (
	"errors"
	"net/http"

	"github.com/templui/brainbox/internal/ctxkeys"
	"github.com/templui/brainbox/internal/service"
	"github.com/templui/brainbox/internal/validation"
)

type ShareHandler struct {
	shareService *service.ShareService
}

func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

type toggleShareRequest struct {
	Share *bool `json:"share"`
}

type shareHashResponse struct {
	Hash string `json:"hash"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type shareStatusResponse struct {
	Active bool   `json:"active"`
	Hash   string `json:"hash,omitempty"`
}

// Toggle enables sharing for {"share": true} and disables it for {"share": false}.
func (h *ShareHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req toggleShareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Share == nil {
		writeValidation(w, validation.Errors{{Field: "share", Rule: "required", Message: "share must be true or false"}})
		return
	}

	if *req.Share {
		link, err := h.shareService.Enable(r.Context(), userID)
		if err != nil {
			writeInternal(w, "failed to enable share link", err, "user_id", userID)
			return
		}
		writeJSON(w, http.StatusOK, shareHashResponse{Hash: link.Hash})
		return
	}

	err := h.shareService.Disable(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveLink) {
			writeError(w, http.StatusNotFound, "No active share link")
			return
		}
		writeInternal(w, "failed to disable share link", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Share link disabled"})
}

func (h *ShareHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	link, err := h.shareService.Status(r.Context(), userID)
	if err != nil {
		writeInternal(w, "failed to load share status", err, "user_id", userID)
		return
	}

	if link == nil {
		writeJSON(w, http.StatusOK, shareStatusResponse{Active: false})
		return
	}
	writeJSON(w, http.StatusOK, shareStatusResponse{Active: true, Hash: link.Hash})
}

// Resolve serves the public, unauthenticated view of a shared collection.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	view, err := h.shareService.Resolve(r.Context(), r.PathValue("hash"))
	if err != nil {
		if errors.Is(err, service.ErrShareNotFound) {
			writeError(w, http.StatusNotFound, "Shared collection not found")
			return
		}
		writeInternal(w, "failed to resolve share link", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
