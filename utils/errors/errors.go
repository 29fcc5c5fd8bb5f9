package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// The full error taxonomy of the merge engine. A failed Overpass call or a
// failed database query fails the whole request; there is no retry and no
// partial result, so half-merged safety data is never served.
var (
	ErrInvalidQuery      = NewAPIError("INVALID_QUERY", "Latitude and longitude are required", http.StatusBadRequest)
	ErrNotFound          = NewAPIError("NOT_FOUND", "Pool not found", http.StatusNotFound)
	ErrSourceUnavailable = NewAPIError("SOURCE_UNAVAILABLE", "Map data source unavailable", http.StatusBadGateway)
	ErrStoreUnavailable  = NewAPIError("STORE_UNAVAILABLE", "Pool database unavailable", http.StatusInternalServerError)
	ErrInternal          = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}
