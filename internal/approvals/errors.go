package approvals

import (
	"errors"
	"net/http"

	"github.com/agentdeck/agentdeck/pkg/repository"
	"github.com/agentdeck/agentdeck/pkg/validation"
)

// Domain errors for approval operations.
var (
	ErrNotFound        = errors.New("approval not found")
	ErrDuplicate       = errors.New("approval already exists")
	ErrAlreadyReviewed = errors.New("approval has already been reviewed")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrAlreadyReviewed),
		errors.Is(err, repository.ErrReferenced):
		return http.StatusConflict
	case validation.Is(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
