package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// APIError is an error that knows its HTTP status and client-facing message.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error as a failure envelope.
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: false, Message: e.Message})
}

func NewUnauthorizedError(message string) *APIError {
	if message == "" {
		message = "authentication required"
	}
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewValidationError(fields []FieldError) *APIError {
	message := "invalid request"
	if len(fields) > 0 {
		message = fmt.Sprintf("%s: %s", fields[0].Field, fields[0].Message)
		if len(fields) > 1 {
			message = fmt.Sprintf("%s (and %d more errors)", message, len(fields)-1)
		}
	}
	return &APIError{Status: http.StatusBadRequest, Message: message, Fields: fields}
}

func NewBadRequestError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

func NewPayloadTooLargeError(message string) *APIError {
	return &APIError{Status: http.StatusRequestEntityTooLarge, Message: message}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}

func NewServiceUnavailableError(message string) *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Message: message}
}

func NewRateLimitError(retryAfter int) *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("too many requests, retry after %d seconds", retryAfter),
	}
}
