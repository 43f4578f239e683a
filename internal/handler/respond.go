package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkpost/inkpost-go/internal/apperr"
)

// errorBody is the uniform error payload: a message plus the batched field
// violations when the error is a validation failure.
type errorBody struct {
	Message string              `json:"message"`
	Data    []apperr.FieldError `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError decodes the application error taxonomy into HTTP responses.
// Unexpected failures are logged with their cause and surfaced as a generic
// message.
func writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.KindUnexpected {
			slog.Error("request failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error"})
			return
		}
		writeJSON(w, ae.HTTPStatus(), errorBody{Message: ae.Message, Data: ae.Fields})
		return
	}

	slog.Error("unclassified error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Message: "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return false
	}
	return true
}
