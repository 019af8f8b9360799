package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Notifuse/mailcanvas/internal/domain"
)

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps a service error to the status code it is reported with.
// Anything that is not a known domain error is a server failure.
func errorStatus(err error) int {
	var (
		validationErr domain.ValidationError
		templateErr   *domain.ErrTemplateNotFound
		sessionErr    *domain.ErrSessionNotFound
		notFoundErr   *domain.ErrNotFound
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &templateErr), errors.As(err, &sessionErr), errors.As(err, &notFoundErr):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
