package errors

import (
	"fmt"
	"net/http"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "ValidationError", "RecordNotFound")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (field name, record id, etc.)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "InvalidRequest", "ValidationError":
		return http.StatusBadRequest
	case "Unauthorized":
		return http.StatusUnauthorized
	case "RecordNotFound", "ResourceNotFound":
		return http.StatusNotFound
	case "ConfirmationRequired":
		return http.StatusConflict
	case "StorageUnavailable", "ServiceUnavailable":
		return http.StatusServiceUnavailable
	case "InternalError":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError("InvalidRequest", message, details)
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError("ValidationError", message, fmt.Sprintf("Field: %s", field))
}

func NewRecordNotFound(recordID string) *StandardError {
	return NewStandardError("RecordNotFound", "record not found", fmt.Sprintf("Record ID: %s", recordID))
}

func NewConfirmationRequired(recordID string, quantity int) *StandardError {
	return NewStandardError("ConfirmationRequired", "quantity update would delete the record",
		fmt.Sprintf("Record ID: %s, Quantity: %d. Repeat with confirm=true to delete", recordID, quantity))
}

func NewStorageUnavailable(operation string, err error) *StandardError {
	return NewStandardError("StorageUnavailable", fmt.Sprintf("storage operation failed: %s", operation), err.Error())
}

func NewUnauthorized(message, details string) *StandardError {
	return NewStandardError("Unauthorized", message, details)
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}
