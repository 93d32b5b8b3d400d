package api

import (
	"net/http"

	"github.com/ukaji3/exaccum-go/pkg/exaccum"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/export"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
)

// RecomputeHandler serves the preview/recompute flow over the source workbook.
type RecomputeHandler struct {
	settings Settings
}

// NewRecomputeHandler creates a new recompute handler.
func NewRecomputeHandler(settings Settings) *RecomputeHandler {
	return &RecomputeHandler{settings: settings}
}

// RecomputeRequest carries the key and per-row quantity edits.
type RecomputeRequest struct {
	Key          string                 `json:"key"`
	NumberValues map[string]interface{} `json:"number_values"`
}

// PreviewResponse lists matched rows with their edit keys.
type PreviewResponse struct {
	Key  string              `json:"key"`
	Rows []models.PreviewRow `json:"rows"`
}

// Preview handles GET /preview?key=
func (h *RecomputeHandler) Preview(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	rows, err := exaccum.Preview(h.settings.SourcePath, key, h.settings.Options)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	if rows == nil {
		rows = []models.PreviewRow{}
	}
	writeJSON(w, http.StatusOK, PreviewResponse{
		Key:  h.settings.Options.SchemaOrDefault().NormalizeKey(key),
		Rows: rows,
	})
}

// Recompute handles POST /recompute
func (h *RecomputeHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	var req RecomputeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	edits, err := exaccum.ParseEdits(req.NumberValues)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	data, err := exaccum.Recompute(h.settings.SourcePath, req.Key, edits, h.settings.Options)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeAttachment(w, export.ResultFileName(h.settings.ResultPrefix), export.ContentType, data)
}
