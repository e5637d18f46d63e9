package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrUnknownItem     = errors.New("unknown menu item")
	ErrMissingField    = errors.New("required field missing")
	ErrInvalidValue    = errors.New("invalid value")
	ErrEmptyOrder      = errors.New("order has no items")

	ErrDuplicateItem = errors.New("menu item already exists")
	ErrNotFound      = errors.New("menu item not found")
)

// ValidationError dilaporkan ke operator; operasi dibatalkan tanpa perubahan state
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Nama sink untuk SinkWriteError
const (
	SinkDatabase = "database"
	SinkLedger   = "ledger"
	SinkJSON     = "json"
	SinkPDF      = "pdf"
)

// SinkWriteError menandai kegagalan satu sink. Sink lain yang sudah berhasil
// pada finalisasi yang sama tidak di-rollback.
type SinkWriteError struct {
	Sink string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("%s sink: %v", e.Sink, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }
