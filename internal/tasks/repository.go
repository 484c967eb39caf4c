package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agentdeck/agentdeck/internal/activities"
	"github.com/agentdeck/agentdeck/internal/agents"
	"github.com/agentdeck/agentdeck/pkg/jsonmap"
	"github.com/agentdeck/agentdeck/pkg/pagination"
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

const returning = `id, agent_id, user_id, type, title, description, status, priority,
		payload, result, error, gated, scheduled_for, started_at, completed_at,
		created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	audit      activities.Recorder
	agents     agents.System

	mu        sync.RWMutex
	gate      GateOpener
	canceller RunCanceller
}

// New creates a new tasks repository implementing the System interface.
// The approval gate and run canceller are bound separately after all systems
// are constructed.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, audit activities.Recorder, agentSys agents.System) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "tasks"),
		pagination: pagination,
		audit:      audit,
		agents:     agentSys,
	}
}

func (r *repo) BindGate(gate GateOpener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gate = gate
}

func (r *repo) BindCanceller(c RunCanceller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canceller = c
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Task], error) {
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
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	tasks, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTask)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	result := pagination.NewPageResult(tasks, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Task, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTask)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	// The agent's security configuration decides whether the task waits on a
	// human approval before dispatch.
	gated := false
	if req.AgentID != nil {
		agent, err := r.agents.Find(ctx, *req.AgentID)
		if err != nil {
			if errors.Is(err, agents.ErrNotFound) {
				return nil, ErrAgentGone
			}
			return nil, fmt.Errorf("resolve agent %d: %w", *req.AgentID, err)
		}
		gated = agent.ApprovalRequired()
	}

	q := fmt.Sprintf(`
		INSERT INTO tasks (agent_id, user_id, type, title, description, status, priority, payload, gated, scheduled_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, returning)

	// The approval gate is written through the same transaction as the task:
	// a failed gate rolls the task back rather than committing a gated row
	// that no approval can ever release.
	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Task, error) {
		t, err := repository.QueryOne(ctx, tx, q,
			[]any{req.AgentID, req.UserID, req.Type, req.Title, req.Description,
				StatusPending, priority, req.Payload, gated, req.ScheduledFor},
			scanTask,
		)
		if err != nil {
			return t, err
		}

		if gated {
			if err := r.openGate(ctx, tx, &t); err != nil {
				return t, err
			}
		}
		return t, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recordActivity(ctx, &t, "task_created", fmt.Sprintf("Task %q created", t.Title))
	r.logger.Info("task created", "id", t.ID, "type", t.Type, "priority", t.Priority, "gated", t.Gated)
	return &t, nil
}

func (r *repo) Update(ctx context.Context, id int64, req UpdateTaskRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, payload = $4,
			scheduled_for = $5, updated_at = NOW()
		WHERE id = $6 AND status = 'pending'
		RETURNING %s`, returning)

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Task, error) {
		return repository.QueryOne(ctx, tx, q,
			[]any{req.Title, req.Description, req.Priority, req.Payload, req.ScheduledFor, id},
			scanTask,
		)
	})

	if err != nil {
		return nil, r.mapGuardedError(ctx, id, err)
	}

	r.logger.Info("task updated", "id", t.ID, "title", t.Title)
	return &t, nil
}

// Cancel moves a pending or processing task to cancelled. A processing task's
// runner is also signalled through the bound canceller; its eventual outcome
// write is guarded on status and cannot resurrect the task.
func (r *repo) Cancel(ctx context.Context, id int64) (*Task, error) {
	q := fmt.Sprintf(`
		UPDATE tasks
		SET status = 'cancelled', completed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'processing')
		RETURNING %s`, returning)

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Task, error) {
		return repository.QueryOne(ctx, tx, q, []any{id}, scanTask)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, findErr := r.Find(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, ErrTerminal
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.mu.RLock()
	canceller := r.canceller
	r.mu.RUnlock()
	if canceller != nil {
		canceller.CancelRun(t.ID)
	}

	r.recordActivity(ctx, &t, "task_cancelled", fmt.Sprintf("Task %q cancelled", t.Title))
	r.logger.Info("task cancelled", "id", t.ID)
	return &t, nil
}

// Delete removes a terminal task. Active tasks must be cancelled first.
func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx,
			"DELETE FROM tasks WHERE id = $1 AND status IN ('completed', 'failed', 'cancelled')", id)
		return struct{}{}, err
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, findErr := r.Find(ctx, id); findErr != nil {
				return findErr
			}
			return ErrNotTerminal
		}
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("task deleted", "id", id)
	return nil
}

func (r *repo) Release(ctx context.Context, id int64) (*Task, error) {
	q := fmt.Sprintf(`
		UPDATE tasks
		SET gated = FALSE, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING %s`, returning)

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Task, error) {
		return repository.QueryOne(ctx, tx, q, []any{id}, scanTask)
	})

	if err != nil {
		return nil, r.mapGuardedError(ctx, id, err)
	}

	r.recordActivity(ctx, &t, "task_released", fmt.Sprintf("Task %q released for dispatch", t.Title))
	r.logger.Info("task released", "id", t.ID)
	return &t, nil
}

// Claim atomically moves up to limit due, ungated pending tasks to processing.
// SKIP LOCKED keeps concurrent dispatchers from claiming the same rows.
func (r *repo) Claim(ctx context.Context, limit int) ([]Task, error) {
	q := fmt.Sprintf(`
		UPDATE tasks
		SET status = 'processing', started_at = NOW(), updated_at = NOW()
		WHERE id IN (
			SELECT id FROM tasks
			WHERE status = 'pending'
				AND NOT gated
				AND (scheduled_for IS NULL OR scheduled_for <= NOW())
			ORDER BY
				CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
				created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING %s`, returning)

	claimed, err := repository.QueryMany(ctx, r.db, q, []any{limit}, scanTask)
	if err != nil {
		return nil, fmt.Errorf("claim tasks: %w", err)
	}
	return claimed, nil
}

// Requeue returns every processing task to pending. Called once at dispatcher
// startup, before any run is in flight, to recover rows stranded by a crash.
func (r *repo) Requeue(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = 'pending', started_at = NULL, updated_at = NOW()
		WHERE status = 'processing'`)
	if err != nil {
		return 0, fmt.Errorf("requeue stale tasks: %w", err)
	}
	return res.RowsAffected()
}

func (r *repo) Complete(ctx context.Context, id int64, result jsonmap.Map) (*Task, error) {
	q := fmt.Sprintf(`
		UPDATE tasks
		SET status = 'completed', result = $1, completed_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = 'processing'
		RETURNING %s`, returning)

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Task, error) {
		return repository.QueryOne(ctx, tx, q, []any{result, id}, scanTask)
	})

	if err != nil {
		return nil, r.mapGuardedError(ctx, id, err)
	}

	r.touchAgent(ctx, &t)
	r.recordActivity(ctx, &t, "task_completed", fmt.Sprintf("Task %q completed", t.Title))
	r.logger.Info("task completed", "id", t.ID)
	return &t, nil
}

func (r *repo) Fail(ctx context.Context, id int64, message string) (*Task, error) {
	q := fmt.Sprintf(`
		UPDATE tasks
		SET status = 'failed', error = $1, completed_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = 'processing'
		RETURNING %s`, returning)

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Task, error) {
		return repository.QueryOne(ctx, tx, q, []any{message, id}, scanTask)
	})

	if err != nil {
		return nil, r.mapGuardedError(ctx, id, err)
	}

	r.touchAgent(ctx, &t)
	r.recordActivity(ctx, &t, "task_failed", fmt.Sprintf("Task %q failed: %s", t.Title, message))
	r.logger.Warn("task failed", "id", t.ID, "error", message)
	return &t, nil
}

func (r *repo) openGate(ctx context.Context, q repository.Querier, t *Task) error {
	r.mu.RLock()
	gate := r.gate
	r.mu.RUnlock()

	if gate == nil {
		return fmt.Errorf("task %d requires approval but no gate is bound", t.ID)
	}
	if err := gate.OpenGate(ctx, q, t); err != nil {
		return fmt.Errorf("open approval gate for task %d: %w", t.ID, err)
	}
	return nil
}

// mapGuardedError distinguishes a missing row from one that exists but failed
// a status guard in the WHERE clause.
func (r *repo) mapGuardedError(ctx context.Context, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		if _, findErr := r.Find(ctx, id); findErr != nil {
			return findErr
		}
		return ErrNotPending
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func (r *repo) touchAgent(ctx context.Context, t *Task) {
	if t.AgentID == nil {
		return
	}
	if err := r.agents.TouchActivity(ctx, *t.AgentID); err != nil {
		r.logger.Warn("failed to touch agent activity", "agent_id", *t.AgentID, "error", err)
	}
}

// recordActivity appends an audit entry. Audit failures are logged, not
// propagated: the primary operation already committed.
func (r *repo) recordActivity(ctx context.Context, t *Task, kind, message string) {
	_, err := r.audit.Record(ctx, activities.RecordCommand{
		UserID:  t.UserID,
		AgentID: t.AgentID,
		TaskID:  &t.ID,
		Type:    kind,
		Message: message,
	})
	if err != nil {
		r.logger.Warn("failed to record activity", "task_id", t.ID, "type", kind, "error", err)
	}
}
