package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/templui/brainbox/internal/ctxkeys"
	"github.com/templui/brainbox/internal/model"
	"github.com/templui/brainbox/internal/service"
	"github.com/templui/brainbox/internal/validation"
)

type ContentHandler struct {
	contentService *service.ContentService
	exportService  *service.ExportService
}

func NewContentHandler(contentService *service.ContentService, exportService *service.ExportService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		exportService:  exportService,
	}
}

type createContentRequest struct {
	Title   string `json:"title"`
	Kind    string `json:"kind"`
	Locator string `json:"locator"`
}

type contentListResponse struct {
	Content []*model.Content `json:"content"`
}

type deleteContentResponse struct {
	DeletedID string `json:"deletedId"`
}

type exportResponse struct {
	URL string `json:"url"`
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req createContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title := strings.TrimSpace(req.Title)
	kind := strings.TrimSpace(req.Kind)
	locator := req.Locator
	if kind != model.ContentKindNote {
		locator = strings.TrimSpace(locator)
	}

	err := validation.ValidateContent(title, kind, locator)
	if writeValidation(w, err) {
		return
	}

	content, err := h.contentService.Create(r.Context(), userID, title, kind, locator)
	if err != nil {
		writeInternal(w, "failed to create content", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, content)
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	kind := r.URL.Query().Get("kind")
	if kind != "" && !model.IsContentKind(kind) {
		writeValidation(w, validation.Errors{{Field: "kind", Rule: "enum", Message: "must be one of " + strings.Join(model.ContentKinds, ", ")}})
		return
	}

	contents, err := h.contentService.Contents(r.Context(), userID, kind)
	if err != nil {
		writeInternal(w, "failed to list content", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, contentListResponse{Content: contents})
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	contentID := r.PathValue("id")

	err := h.contentService.Delete(r.Context(), userID, contentID)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			writeError(w, http.StatusNotFound, "Content not found")
			return
		}
		writeInternal(w, "failed to delete content", err, "user_id", userID, "content_id", contentID)
		return
	}

	writeJSON(w, http.StatusOK, deleteContentResponse{DeletedID: contentID})
}

func (h *ContentHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	url, err := h.exportService.Export(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrExportUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "Export is not available")
			return
		}
		writeInternal(w, "failed to export content", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{URL: url})
}
