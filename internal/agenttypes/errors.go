package agenttypes

import (
	"errors"
	"net/http"

	"github.com/agentdeck/agentdeck/pkg/repository"
	"github.com/agentdeck/agentdeck/pkg/validation"
)

// Domain errors for agent type operations.
var (
	ErrNotFound  = errors.New("agent type not found")
	ErrDuplicate = errors.New("agent type name already exists")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, repository.ErrReferenced) {
		return http.StatusConflict
	}
	if validation.Is(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
