package approvals

import (
	"context"

	"github.com/agentdeck/agentdeck/internal/tasks"
	"github.com/agentdeck/agentdeck/pkg/pagination"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

// TaskGate is the slice of the task system an approval drives on review:
// releasing the gated task on approve, cancelling it on reject.
type TaskGate interface {
	Release(ctx context.Context, id int64) (*tasks.Task, error)
	Cancel(ctx context.Context, id int64) (*tasks.Task, error)
}

// System defines the interface for approval management operations. It also
// implements tasks.GateOpener so gated task creation opens a pending approval.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Approval], error)
	Find(ctx context.Context, id int64) (*Approval, error)
	Create(ctx context.Context, req CreateApprovalRequest) (*Approval, error)
	Review(ctx context.Context, id int64, req ReviewRequest) (*Approval, error)
	OpenGate(ctx context.Context, q repository.Querier, t *tasks.Task) error
}
