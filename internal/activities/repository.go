package activities

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

// New creates a new activities repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "activities"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Activity], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Message", "Type")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanActivity)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Activity, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanActivity)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Record(ctx context.Context, cmd RecordCommand) (*Activity, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO activities (user_id, agent_id, task_id, type, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, agent_id, task_id, type, message, metadata, created_at`

	a, err := repository.QueryOne(ctx, r.db, q,
		[]any{cmd.UserID, cmd.AgentID, cmd.TaskID, cmd.Type, cmd.Message, cmd.Metadata},
		scanActivity,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Debug("activity recorded", "id", a.ID, "type", a.Type)
	return &a, nil
}
