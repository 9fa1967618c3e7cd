package decisions

import (
	"errors"
	"net/http"

	"github.com/kitelabs/kite/internal/cheques"
)

// Domain errors for decision operations.
var (
	ErrNotFound       = errors.New("decision not found")
	ErrDuplicate      = errors.New("decision already exists")
	ErrInvalidStatus  = errors.New("cheque is not in review status")
	ErrInvalidOutcome = errors.New("unrecognized decision outcome")
	ErrInvalid        = errors.New("invalid decision command")
)

// MapHTTPStatus maps decision domain errors to appropriate HTTP status
// codes. Cheque lookups surface through Process, so cheque not found maps
// here as well.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, cheques.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidOutcome) || errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
