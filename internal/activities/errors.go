package activities

import (
	"errors"
	"net/http"

	"github.com/agentdeck/agentdeck/pkg/validation"
)

// Domain errors for activity operations.
var (
	ErrNotFound  = errors.New("activity not found")
	ErrDuplicate = errors.New("activity already exists")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if validation.Is(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
