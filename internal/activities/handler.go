package activities

import (
	"log/slog"
	"net/http"

	"github.com/agentdeck/agentdeck/internal/routes"
	"github.com/agentdeck/agentdeck/pkg/handlers"
	"github.com/agentdeck/agentdeck/pkg/pagination"
)

// Handler provides HTTP handlers for reading the audit log.
// The log is append-only; entries are recorded by domain systems, so the
// HTTP surface exposes only retrieval.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a new activities HTTP handler.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
	}
}

// Routes returns the route group configuration for activity endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/activities",
		Tags:        []string{"Activities"},
		Description: "Append-only audit log",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
		},
	}
}

// List handles GET /api/activities to retrieve a paginated slice of the audit log.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find handles GET /api/activities/{id} to retrieve a single audit entry.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
