package services

import "fmt"

// ValidationError marks a request rejected before touching the store.
// Handlers map it to HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError marks an operation that targeted zero rows. Handlers map it
// to HTTP 404.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError marks a uniqueness violation. Handlers map it to HTTP 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// CycleError marks a parent assignment that would make a node its own
// ancestor. Handlers map it to HTTP 400.
type CycleError struct {
	Message string
}

func (e *CycleError) Error() string {
	return e.Message
}
