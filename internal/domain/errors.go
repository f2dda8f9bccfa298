package domain

import "fmt"

// Domain errors
var (
	ErrRecordNotFound = &DomainError{Message: "record not found"}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// ValidationError rejects malformed input before anything is written
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError is returned when a mutation targets an absent id.
// It matches ErrRecordNotFound with errors.Is.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// StorageError wraps a failed call to the key-value store
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
