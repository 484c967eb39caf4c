package tasks

import (
	"context"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
	"github.com/agentdeck/agentdeck/pkg/pagination"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

// Store is the slice of the task system the dispatcher drives: claiming due
// work, recording outcomes, and returning stale processing rows to pending
// after a crash.
type Store interface {
	Claim(ctx context.Context, limit int) ([]Task, error)
	Complete(ctx context.Context, id int64, result jsonmap.Map) (*Task, error)
	Fail(ctx context.Context, id int64, message string) (*Task, error)
	Requeue(ctx context.Context) (int64, error)
}

// GateOpener opens a human-review gate for a newly created task, writing the
// approval through the caller's transaction so task and gate commit or roll
// back together. Implemented by the approvals system; bound after
// construction to keep the dependency between the two systems
// one-directional.
type GateOpener interface {
	OpenGate(ctx context.Context, q repository.Querier, t *Task) error
}

// RunCanceller stops an in-flight task run. Implemented by the Dispatcher.
type RunCanceller interface {
	CancelRun(id int64) bool
}

// System defines the interface for task management operations.
type System interface {
	Store

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Task], error)
	Find(ctx context.Context, id int64) (*Task, error)
	Create(ctx context.Context, req CreateTaskRequest) (*Task, error)
	Update(ctx context.Context, id int64, req UpdateTaskRequest) (*Task, error)
	Cancel(ctx context.Context, id int64) (*Task, error)
	Delete(ctx context.Context, id int64) error

	// Release lifts the approval gate on a pending task so the dispatcher
	// may claim it.
	Release(ctx context.Context, id int64) (*Task, error)

	BindGate(gate GateOpener)
	BindCanceller(c RunCanceller)
}
