package service

import (
	"errors"
	"fmt"
)

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrVersionNotFound = errors.New("note version not found")
)

// ValidationError reports input that violates a length or presence rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a failure of the persistence layer. Any transaction
// involved has already been rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
