package agents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/agentdeck/agentdeck/internal/activities"
	"github.com/agentdeck/agentdeck/pkg/decode"
	"github.com/agentdeck/agentdeck/pkg/jsonmap"
	"github.com/agentdeck/agentdeck/pkg/pagination"
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

const returning = `id, name, description, type_id, user_id, status, priority,
		configuration, security_config, last_activity, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	audit      activities.Recorder
}

// New creates a new agents repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, audit activities.Recorder) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "agents"),
		pagination: pagination,
		audit:      audit,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	agents, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	result := pagination.NewPageResult(agents, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Agent, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, req CreateAgentRequest) (*Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	security, err := decode.ToMap(req.SecurityConfig)
	if err != nil {
		return nil, fmt.Errorf("encode security config: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO agents (name, description, type_id, user_id, status, priority, configuration, security_config)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, returning)

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		return repository.QueryOne(ctx, tx, q,
			[]any{req.Name, req.Description, req.TypeID, req.UserID, StatusInactive, req.Priority, req.Configuration, jsonmap.Map(security)},
			scanAgent,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recordActivity(ctx, &a, "agent_created", fmt.Sprintf("Agent %q created", a.Name))
	r.logger.Info("agent created", "id", a.ID, "name", a.Name, "priority", a.Priority)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id int64, req UpdateAgentRequest) (*Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	security, err := decode.ToMap(req.SecurityConfig)
	if err != nil {
		return nil, fmt.Errorf("encode security config: %w", err)
	}

	q := fmt.Sprintf(`
		UPDATE agents
		SET name = $1, description = $2, type_id = $3, priority = $4,
			configuration = $5, security_config = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING %s`, returning)

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		return repository.QueryOne(ctx, tx, q,
			[]any{req.Name, req.Description, req.TypeID, req.Priority, req.Configuration, jsonmap.Map(security), id},
			scanAgent,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent updated", "id", a.ID, "name", a.Name)
	return &a, nil
}

func (r *repo) SetStatus(ctx context.Context, id int64, req SetStatusRequest) (*Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE agents
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s`, returning)

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		return repository.QueryOne(ctx, tx, q, []any{req.Status, id}, scanAgent)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recordActivity(ctx, &a, "agent_status_changed", fmt.Sprintf("Agent %q is now %s", a.Name, a.Status))
	r.logger.Info("agent status changed", "id", a.ID, "status", a.Status)
	return &a, nil
}

func (r *repo) TouchActivity(ctx context.Context, id int64) error {
	err := repository.ExecExpectOne(ctx, r.db,
		"UPDATE agents SET last_activity = NOW(), updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM agents WHERE id = $1", id)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent deleted", "id", id)
	return nil
}

// recordActivity appends an audit entry. Audit failures are logged, not
// propagated: the primary operation already committed.
func (r *repo) recordActivity(ctx context.Context, a *Agent, kind, message string) {
	_, err := r.audit.Record(ctx, activities.RecordCommand{
		UserID:  a.UserID,
		AgentID: &a.ID,
		Type:    kind,
		Message: message,
	})
	if err != nil {
		r.logger.Warn("failed to record activity", "agent_id", a.ID, "type", kind, "error", err)
	}
}
