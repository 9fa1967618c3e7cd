package payers

import (
	"errors"
	"net/http"
)

// Domain errors for payer operations.
var (
	ErrNotFound     = errors.New("payer not found")
	ErrDuplicate    = errors.New("payer account already registered")
	ErrInvalid      = errors.New("invalid payer")
	ErrNoSignature  = errors.New("payer has no reference signature")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps payer domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoSignature) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
