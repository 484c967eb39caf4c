// Package api assembles the domain systems, HTTP routes, and middleware into
// a runnable service.
package api

import (
	"net/http"

	"github.com/agentdeck/agentdeck/internal/activities"
	"github.com/agentdeck/agentdeck/internal/agents"
	"github.com/agentdeck/agentdeck/internal/agenttypes"
	"github.com/agentdeck/agentdeck/internal/approvals"
	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/infrastructure"
	"github.com/agentdeck/agentdeck/internal/middleware"
	"github.com/agentdeck/agentdeck/internal/routes"
	"github.com/agentdeck/agentdeck/internal/server"
	"github.com/agentdeck/agentdeck/internal/tasks"
	"github.com/agentdeck/agentdeck/pkg/handlers"
)

// API holds the assembled domain systems and the HTTP server.
type API struct {
	cfg   *config.Config
	infra *infrastructure.Infrastructure

	AgentTypes agenttypes.System
	Agents     agents.System
	Tasks      tasks.System
	Approvals  approvals.System
	Activities activities.System

	Runners    *tasks.Registry
	Dispatcher *tasks.Dispatcher

	server server.System
}

// New wires domain systems over the shared infrastructure and builds the
// HTTP surface. The approval gate and run canceller are bound after
// construction so the tasks/approvals dependency stays one-directional.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) *API {
	db := infra.Database.Connection()
	log := infra.Logger
	pag := cfg.Pagination

	activitySys := activities.New(db, log, pag)
	typeSys := agenttypes.New(db, log, pag)
	agentSys := agents.New(db, log, pag, activitySys)
	taskSys := tasks.New(db, log, pag, activitySys, agentSys)
	approvalSys := approvals.New(db, log, pag, activitySys, taskSys)
	taskSys.BindGate(approvalSys)

	runners := tasks.NewRegistry()
	dispatcher := tasks.NewDispatcher(taskSys, runners, &cfg.Dispatcher, log)
	taskSys.BindCanceller(dispatcher)

	a := &API{
		cfg:        cfg,
		infra:      infra,
		AgentTypes: typeSys,
		Agents:     agentSys,
		Tasks:      taskSys,
		Approvals:  approvalSys,
		Activities: activitySys,
		Runners:    runners,
		Dispatcher: dispatcher,
	}

	router := routes.New(log)
	router.RegisterGroup(agenttypes.NewHandler(typeSys, log, pag).Routes())
	router.RegisterGroup(agents.NewHandler(agentSys, log, pag).Routes())
	router.RegisterGroup(tasks.NewHandler(taskSys, log, pag).Routes())
	router.RegisterGroup(approvals.NewHandler(approvalSys, log, pag).Routes())
	router.RegisterGroup(activities.NewHandler(activitySys, log, pag).Routes())
	router.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: a.health})
	router.RegisterRoute(routes.Route{Method: "GET", Pattern: "/readyz", Handler: a.ready})

	handler := middleware.Chain(router.Build(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS(&cfg.CORS),
		middleware.TrimSlash(),
		middleware.MaxBytes(cfg.Server.MaxBodySizeBytes()),
	)

	a.server = server.New(&cfg.Server, handler, log, cfg.ShutdownTimeoutDuration())
	return a
}

// Start launches the HTTP server and the task dispatcher.
func (a *API) Start() error {
	if err := a.server.Start(a.infra.Lifecycle); err != nil {
		return err
	}
	a.Dispatcher.Start(a.infra.Lifecycle)
	return nil
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": a.cfg.Version,
	})
}

func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	if !a.infra.Lifecycle.Ready() {
		handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
