package agenttypes

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/agentdeck/agentdeck/pkg/pagination"
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a new agent types repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "agenttypes"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[AgentType], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Category")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agent types: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	types, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAgentType)
	if err != nil {
		return nil, fmt.Errorf("query agent types: %w", err)
	}

	result := pagination.NewPageResult(types, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*AgentType, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanAgentType)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, req CreateAgentTypeRequest) (*AgentType, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO agent_types (name, description, icon, color, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, icon, color, category, created_at, updated_at`

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (AgentType, error) {
		return repository.QueryOne(ctx, tx, q,
			[]any{req.Name, req.Description, req.Icon, req.Color, req.Category},
			scanAgentType,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent type created", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) Update(ctx context.Context, id int64, req UpdateAgentTypeRequest) (*AgentType, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE agent_types
		SET name = $1, description = $2, icon = $3, color = $4, category = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, name, description, icon, color, category, created_at, updated_at`

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (AgentType, error) {
		return repository.QueryOne(ctx, tx, q,
			[]any{req.Name, req.Description, req.Icon, req.Color, req.Category, id},
			scanAgentType,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent type updated", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM agent_types WHERE id = $1", id)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent type deleted", "id", id)
	return nil
}
