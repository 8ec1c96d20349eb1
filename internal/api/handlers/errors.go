package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Error kinds returned in the "error" field of every failure response
const (
	KindValidation      = "ValidationError"
	KindTooManyRequests = "TooManyRequests"
	KindNotFound        = "NotFound"
	KindInternal        = "InternalError"
	KindUnauthenticated = "Unauthenticated"
)

// ErrorResponse is the JSON body of a failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	WriteFieldError(w, statusCode, errorType, "", message)
}

// WriteFieldError writes an error response that names the offending input field
func WriteFieldError(w http.ResponseWriter, statusCode int, errorType, field, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:   errorType,
		Message: message,
		Field:   field,
	})
}

// WriteJSON writes v as a JSON response body
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("failed to encode response")
	}
}
