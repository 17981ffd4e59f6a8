package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for the qrcode domain. Use errors.Is() to check these.
var (
	// ErrQRCodeNotFound indicates the QR code does not exist or belongs to another shop.
	ErrQRCodeNotFound = errors.New("qr code not found")

	// ErrQRCodeAlreadyExists indicates a QR code with the same id is already stored.
	ErrQRCodeAlreadyExists = errors.New("qr code already exists")

	// ErrInvalidQRCode indicates the QR code violates domain constraints.
	ErrInvalidQRCode = errors.New("invalid qr code")
)

// ValidationError carries per-field messages for a rejected QR code.
// It matches ErrInvalidQRCode under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError for the given field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidQRCode, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidQRCode
}

// FieldErrors returns the field name to message map.
func (e *ValidationError) FieldErrors() map[string]string {
	return e.Fields
}
