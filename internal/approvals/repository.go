package approvals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agentdeck/agentdeck/internal/activities"
	"github.com/agentdeck/agentdeck/internal/tasks"
	"github.com/agentdeck/agentdeck/pkg/pagination"
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

const returning = `id, task_id, agent_id, type, title, description, status,
		request_data, suggested_response, reviewed_by, reviewed_at,
		created_at, updated_at`

// GateType marks approvals opened automatically for gated tasks.
const GateType = "task_dispatch"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	audit      activities.Recorder
	gate       TaskGate
}

// New creates a new approvals repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, audit activities.Recorder, gate TaskGate) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "approvals"),
		pagination: pagination,
		audit:      audit,
		gate:       gate,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Approval], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count approvals: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	approvals, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanApproval)
	if err != nil {
		return nil, fmt.Errorf("query approvals: %w", err)
	}

	result := pagination.NewPageResult(approvals, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Approval, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanApproval)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, req CreateApprovalRequest) (*Approval, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Approval, error) {
		return r.insert(ctx, tx, req)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recordActivity(ctx, &a, "approval_requested", fmt.Sprintf("Approval %q requested", a.Title))
	r.logger.Info("approval created", "id", a.ID, "type", a.Type, "task_id", a.TaskID)
	return &a, nil
}

func (r *repo) insert(ctx context.Context, q repository.Querier, req CreateApprovalRequest) (Approval, error) {
	stmt := fmt.Sprintf(`
		INSERT INTO approvals (task_id, agent_id, type, title, description, status, request_data, suggested_response)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, returning)

	return repository.QueryOne(ctx, q, stmt,
		[]any{req.TaskID, req.AgentID, req.Type, req.Title, req.Description,
			StatusPending, req.RequestData, req.SuggestedResponse},
		scanApproval,
	)
}

// Review records a reviewer's decision. The update is guarded on
// status = 'pending' so concurrent reviews cannot both win; the loser sees
// ErrAlreadyReviewed. An approved task-gate releases its task to the
// dispatcher; a rejected one cancels it.
func (r *repo) Review(ctx context.Context, id int64, req ReviewRequest) (*Approval, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE approvals
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = 'pending'
		RETURNING %s`, returning)

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Approval, error) {
		return repository.QueryOne(ctx, tx, q, []any{req.Status, req.ReviewedBy, id}, scanApproval)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, findErr := r.Find(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, ErrAlreadyReviewed
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if a.TaskID != nil {
		r.driveTask(ctx, &a)
	}

	r.recordActivity(ctx, &a, "approval_reviewed", fmt.Sprintf("Approval %q %s", a.Title, a.Status))
	r.logger.Info("approval reviewed", "id", a.ID, "status", a.Status, "reviewed_by", a.ReviewedBy)
	return &a, nil
}

// OpenGate creates a pending approval for a gated task, writing through the
// task system's own transaction so the gated task and its approval commit or
// roll back as one.
func (r *repo) OpenGate(ctx context.Context, q repository.Querier, t *tasks.Task) error {
	req := CreateApprovalRequest{
		TaskID:      &t.ID,
		AgentID:     t.AgentID,
		Type:        GateType,
		Title:       fmt.Sprintf("Approve task: %s", t.Title),
		Description: t.Description,
		RequestData: t.Payload,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := r.insert(ctx, q, req)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("approval gate opened", "id", a.ID, "task_id", t.ID)
	return nil
}

// driveTask applies the review outcome to the gated task. A task that already
// left pending (cancelled by hand, for example) makes this a no-op.
func (r *repo) driveTask(ctx context.Context, a *Approval) {
	var err error
	switch a.Status {
	case StatusApproved:
		_, err = r.gate.Release(ctx, *a.TaskID)
	case StatusRejected:
		_, err = r.gate.Cancel(ctx, *a.TaskID)
	}

	if err != nil && !errors.Is(err, tasks.ErrNotPending) && !errors.Is(err, tasks.ErrTerminal) {
		r.logger.Warn("failed to drive gated task", "approval_id", a.ID, "task_id", *a.TaskID, "error", err)
	}
}

// recordActivity appends an audit entry. Audit failures are logged, not
// propagated: the primary operation already committed.
func (r *repo) recordActivity(ctx context.Context, a *Approval, kind, message string) {
	_, err := r.audit.Record(ctx, activities.RecordCommand{
		AgentID: a.AgentID,
		TaskID:  a.TaskID,
		Type:    kind,
		Message: message,
	})
	if err != nil {
		r.logger.Warn("failed to record activity", "approval_id", a.ID, "type", kind, "error", err)
	}
}
