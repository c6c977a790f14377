package pubsub

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the Pub/Sub API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("pubsub API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("pubsub API error: status %d", e.StatusCode)
}

// IsNotFound checks if the error indicates a missing resource.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication or
// permission failure.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsAlreadyExists checks if the error indicates a resource conflict.
func (e *APIError) IsAlreadyExists() bool {
	return e.StatusCode == http.StatusConflict
}

// newAPIError builds an APIError from a response, pulling message and
// status out of the standard Google error envelope when present.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Error.Message
		apiErr.Status = envelope.Error.Status
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}

	return apiErr
}
