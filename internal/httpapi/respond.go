// Package httpapi is the transport boundary: it translates HTTP requests
// into entity-service calls and maps results and the error taxonomy onto the
// response envelope. It holds no caching or persistence logic of its own.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-campus-api/store"
)

// response is the wire envelope: {message, data} on success with count
// preceding data on collection responses, {error} on failure.
type response struct {
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

const internalServerError = "Internal Server Error."

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Message: message})
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, response{Message: message, Data: data})
}

func writeCollection(w http.ResponseWriter, message string, count int, data any) {
	writeJSON(w, http.StatusOK, response{Message: message, Count: &count, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Error: message})
}

// isValidationError reports whether err came out of input validation, either
// as a field-error map or a single rule error.
func isValidationError(err error) bool {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}

// writeServiceError maps the shared part of the error taxonomy. invalidID
// and notFound carry the entity-specific strings; anything unrecognized is a
// store fault and surfaces as a generic 500.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, invalidID, notFound string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		writeError(w, http.StatusBadRequest, invalidID)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, internalServerError)
	}
}
