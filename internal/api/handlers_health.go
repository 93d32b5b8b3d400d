package api

import (
	"net/http"
	"os"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/session"
)

type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status   string       `json:"status"`
	Source   ServiceCheck `json:"source"`
	Sessions int          `json:"sessions"`
}

type HealthHandler struct {
	sourcePath string
	store      *session.Store
}

func NewHealthHandler(sourcePath string, store *session.Store) *HealthHandler {
	return &HealthHandler{sourcePath: sourcePath, store: store}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Source:   ServiceCheck{Status: "ok"},
		Sessions: h.store.Len(),
	}

	if _, err := os.Stat(h.sourcePath); err != nil {
		resp.Source = ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
