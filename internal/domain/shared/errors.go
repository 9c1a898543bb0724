package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrAllocationExceeded = NewDomainError("ALLOCATION_EXCEEDED", "Amount exceeds the remaining allocatable capacity")
	ErrStorage            = NewDomainError("STORAGE_ERROR", "Storage backend failure")
	ErrPartialFailure     = NewDomainError("PARTIAL_FAILURE", "A multi-step operation was only partially applied")
	ErrVersionConflict    = NewDomainError("VERSION_CONFLICT", "Resource was modified by another process")
)
