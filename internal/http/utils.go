package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/internal/service"
	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
	"github.com/reachsuite/emailbuilder/pkg/logger"
	"github.com/reachsuite/emailbuilder/pkg/ratelimiter"
)

const maxRequestBodySize = 2 << 20

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

type validator interface {
	Validate() error
}

// decodeBody checks the method and reads a JSON body into v. It writes the error
// response and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, log logger.Logger, v interface{}) bool {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(v); err != nil {
		log.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// decodeRequest is decodeBody followed by req.Validate
func decodeRequest(w http.ResponseWriter, r *http.Request, log logger.Logger, req validator) bool {
	if !decodeBody(w, r, log, req) {
		return false
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError maps service and library errors to HTTP status codes.
// Unexpected errors are logged and reported as "Failed to <action>".
func writeServiceError(w http.ResponseWriter, log logger.Logger, action string, err error) {
	var (
		validationErr    domain.ValidationError
		templateNotFound *domain.ErrTemplateNotFound
		sessionNotFound  *domain.ErrSessionNotFound
		rateLimited      *domain.ErrRateLimited
	)

	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &templateNotFound):
		WriteJSONError(w, "Template not found", http.StatusNotFound)
	case errors.As(err, &sessionNotFound):
		WriteJSONError(w, "Session not found", http.StatusNotFound)
	case errors.As(err, &rateLimited):
		retryAfter := ratelimiter.Decision{RetryAfter: rateLimited.RetryAfter}.RetryAfterSeconds()
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		WriteJSONError(w, rateLimited.Error(), http.StatusTooManyRequests)
	case errors.Is(err, emailblocks.ErrBlockNotFound):
		WriteJSONError(w, "Block not found", http.StatusNotFound)
	case errors.Is(err, emailblocks.ErrNestedColumns),
		errors.Is(err, emailblocks.ErrNotColumns),
		errors.Is(err, emailblocks.ErrColumnIndex),
		errors.Is(err, emailblocks.ErrUnknownPreset):
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, emailblocks.ErrEmptyAIContent):
		WriteJSONError(w, "The AI returned no content", http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrAINotConfigured):
		WriteJSONError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		log.WithField("error", err.Error()).Error(fmt.Sprintf("Failed to %s", action))
		WriteJSONError(w, fmt.Sprintf("Failed to %s", action), http.StatusInternalServerError)
	}
}
