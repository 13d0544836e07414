package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Request decoding errors
	ErrMalformedInput = errors.New("malformed input")

	// Key resolution errors
	ErrKeyColumnNotFound = errors.New("key column not found")
)

// KeyColumnError reports a key column name that matched no header.
type KeyColumnError struct {
	Table  string // which table was searched: "left", "right" or "input"
	Column string
}

func (e *KeyColumnError) Error() string {
	return fmt.Sprintf("key column %q not found in %s headers", e.Column, e.Table)
}

func (e *KeyColumnError) Is(target error) bool {
	return target == ErrKeyColumnNotFound
}

// MalformedInputError reports a request body that could not be decoded.
type MalformedInputError struct {
	Field string // offending field, empty when the body itself failed to parse
	Cause error
}

func (e *MalformedInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed input: missing or invalid field %q", e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed input: %v", e.Cause)
	}
	return "malformed input"
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// Error constructors with context
func NewKeyColumnError(table string, column string) error {
	return &KeyColumnError{Table: table, Column: column}
}

func NewMalformedFieldError(field string) error {
	return &MalformedInputError{Field: field}
}

func NewMalformedInputError(cause error) error {
	return &MalformedInputError{Cause: cause}
}

// Error checking helpers
func IsKeyColumnNotFound(err error) bool {
	return errors.Is(err, ErrKeyColumnNotFound)
}

func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}
