package service

import (
	"github.com/IDS-Mandujano/electronica-back/internal/repository"
)

// Errors surfaced by the services
var (
	ErrNotFound          = repository.ErrNotFound
	ErrInsufficientStock = repository.ErrInsufficientStock
)

// ValidationError reports missing or malformed input
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
