package tasks

import (
	"errors"
	"net/http"

	"github.com/agentdeck/agentdeck/pkg/repository"
	"github.com/agentdeck/agentdeck/pkg/validation"
)

// Domain errors for task operations.
var (
	ErrNotFound    = errors.New("task not found")
	ErrDuplicate   = errors.New("task already exists")
	ErrNotPending  = errors.New("task is no longer pending")
	ErrTerminal    = errors.New("task is in a terminal state")
	ErrAgentGone   = errors.New("referenced agent not found")
	ErrNoRunner    = errors.New("no runner registered for task type")
	ErrNotTerminal = errors.New("only terminal tasks can be deleted")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrNotPending),
		errors.Is(err, ErrTerminal),
		errors.Is(err, ErrNotTerminal),
		errors.Is(err, repository.ErrReferenced):
		return http.StatusConflict
	case errors.Is(err, ErrAgentGone), validation.Is(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
