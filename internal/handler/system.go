package handler

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/templui/brainbox/internal/ctxkeys"
	"github.com/templui/brainbox/internal/db"
)

type SystemHandler struct {
	db *sqlx.DB
}

func NewSystemHandler(db *sqlx.DB) *SystemHandler {
	return &SystemHandler{
		db: db,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

type configResponse struct {
	AppName        string `json:"appName"`
	AppEnv         string `json:"appEnv"`
	AppURL         string `json:"appUrl"`
	ExportsEnabled bool   `json:"exportsEnabled"`
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	err := db.Ping(r.Context(), h.db)
	if err != nil {
		slog.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Config exposes the public part of the configuration to the frontend.
func (h *SystemHandler) Config(w http.ResponseWriter, r *http.Request) {
	cfg := ctxkeys.Config(r.Context())
	if cfg == nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, configResponse{
		AppName:        cfg.AppName,
		AppEnv:         cfg.AppEnv,
		AppURL:         cfg.AppURL,
		ExportsEnabled: cfg.ExportsEnabled(),
	})
}

func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
