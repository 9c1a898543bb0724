package dto

import "net/http"

// Domain error codes surfaced by the application services
const (
	// ErrCodeValidation is used when input fails domain validation
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeAllocationExceeded is used when an amount exceeds the remaining capacity
	ErrCodeAllocationExceeded = "ALLOCATION_EXCEEDED"
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeStorage is used when the object storage backend fails
	ErrCodeStorage = "STORAGE_ERROR"
	// ErrCodePartialFailure is used when a multi-step operation was only partially applied
	ErrCodePartialFailure = "PARTIAL_FAILURE"
	// ErrCodeVersionConflict is used when optimistic locking fails
	ErrCodeVersionConflict = "VERSION_CONFLICT"
)

// Transport-level error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeAllocationExceeded: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:       http.StatusConflict,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeStorage:            http.StatusBadGateway,
	ErrCodePartialFailure:     http.StatusInternalServerError,
	ErrCodeVersionConflict:    http.StatusConflict,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
