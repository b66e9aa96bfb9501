package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/target/timetracker/internal/errors"
)

// Status bodies shared by the JSON endpoints.
const (
	StatusOK      = "ok"
	StatusSuccess = "success"
	StatusError   = "error"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteStatus(w, http.StatusBadRequest, "invalid json")
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// WriteStatus writes a {"status": status} body.
func WriteStatus(w http.ResponseWriter, code int, status string) {
	WriteJSON(w, code, map[string]string{"status": status})
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Err    error
	Logger *slog.Logger
	Op     string
}

// WriteError maps Err to a status code and writes it as a {"status": ...} body.
// Client errors carry their message; everything else is logged and answered with "error".
func WriteError(w http.ResponseWriter, r *http.Request, p ErrorParams) {
	code := apperrors.HTTPStatus(p.Err)
	if code >= http.StatusInternalServerError {
		if p.Logger != nil {
			p.Logger.ErrorContext(r.Context(), p.Op+" failed", "error", p.Err)
		}
		WriteStatus(w, code, StatusError)
		return
	}

	msg := StatusError
	var appErr *apperrors.AppError
	if errors.As(p.Err, &appErr) {
		msg = appErr.Message
	}
	WriteStatus(w, code, msg)
}
