package cheques

import (
	"errors"
	"net/http"
)

// Domain errors for cheque operations.
var (
	ErrNotFound      = errors.New("cheque not found")
	ErrDuplicate     = errors.New("cheque already exists")
	ErrFileTooLarge  = errors.New("file exceeds maximum upload size")
	ErrInvalidFile   = errors.New("invalid file")
	ErrInvalidStatus = errors.New("invalid cheque status")
)

// MapHTTPStatus maps cheque domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrInvalidStatus) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
