package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukaji3/exaccum-go/pkg/exaccum"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

// writePipelineError maps pipeline errors to distinct responses.
func writePipelineError(w http.ResponseWriter, err error) {
	var perr *exaccum.ParseError
	switch {
	case errors.Is(err, exaccum.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, exaccum.ErrSessionEmpty):
		writeError(w, http.StatusConflict, "no data yet: add a category before downloading")
	case errors.Is(err, exaccum.ErrFileAccess):
		writeError(w, http.StatusInternalServerError, "source workbook not found or unreadable")
	case errors.As(err, &perr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeAttachment(w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
