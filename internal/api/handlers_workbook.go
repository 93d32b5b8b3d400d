package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ukaji3/exaccum-go/pkg/exaccum"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/export"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/session"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/table"
)

// WorkbookHandler serves the per-session accumulate/download flow.
type WorkbookHandler struct {
	settings Settings
	store    *session.Store
}

// NewWorkbookHandler creates a new workbook handler.
func NewWorkbookHandler(settings Settings, store *session.Store) *WorkbookHandler {
	return &WorkbookHandler{settings: settings, store: store}
}

// AddRowsRequest selects the category to extract.
type AddRowsRequest struct {
	Category string `json:"category"`
}

// AddRowsResponse reports what was appended and the resulting session view.
type AddRowsResponse struct {
	Message string             `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
	Detail  int                `json:"detail_rows"`
	Summary int                `json:"summary_rows"`
	Sheets  []models.SheetView `json:"sheets"`
}

// SheetsResponse is the session view.
type SheetsResponse struct {
	Session string             `json:"session"`
	Sheets  []models.SheetView `json:"sheets"`
}

// AddRows handles POST /rows
func (h *WorkbookHandler) AddRows(w http.ResponseWriter, r *http.Request) {
	var req AddRowsRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	} else {
		req.Category = r.FormValue("category")
	}

	ext, err := exaccum.Extract(h.settings.SourcePath, req.Category, h.settings.Options)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	wb := h.store.GetOrCreate(GetSessionKey(r))
	detail, summary, err := exaccum.Accumulate(wb, ext, h.settings.Options)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "append rows: "+err.Error())
		return
	}

	sheets, err := table.Snapshot(wb)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read sheets: "+err.Error())
		return
	}

	resp := AddRowsResponse{Detail: detail, Summary: summary, Sheets: sheets}
	if detail+summary == 0 {
		resp.Error = fmt.Sprintf("%s for category %s", exaccum.ErrDataNotFound, ext.Category)
	} else {
		resp.Message = fmt.Sprintf("category %s added: %d detail rows, %d summary rows", ext.Category, detail, summary)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Sheets handles GET /sheets
func (h *WorkbookHandler) Sheets(w http.ResponseWriter, r *http.Request) {
	key := GetSessionKey(r)
	resp := SheetsResponse{Session: key, Sheets: []models.SheetView{}}

	if wb, ok := h.store.Get(key); ok {
		sheets, err := table.Snapshot(wb)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "read sheets: "+err.Error())
			return
		}
		resp.Sheets = sheets
	}
	writeJSON(w, http.StatusOK, resp)
}

// Download handles GET /download
func (h *WorkbookHandler) Download(w http.ResponseWriter, r *http.Request) {
	wb, ok := h.store.Get(GetSessionKey(r))
	if !ok {
		writePipelineError(w, exaccum.ErrSessionEmpty)
		return
	}
	data, err := export.Serialize(wb)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeAttachment(w, export.FileName(h.settings.ExportPrefix, h.settings.now()), export.ContentType, data)
}

// Clear handles POST /clear
func (h *WorkbookHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(GetSessionKey(r))
	w.WriteHeader(http.StatusNoContent)
}
