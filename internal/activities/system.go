package activities

import (
	"context"

	"github.com/agentdeck/agentdeck/pkg/pagination"
)

// Recorder appends entries to the audit log. Domain systems depend on this
// narrow interface rather than the full System.
type Recorder interface {
	Record(ctx context.Context, cmd RecordCommand) (*Activity, error)
}

// System defines the interface for audit log storage and retrieval.
// The log is append-only: there are no update or delete operations.
type System interface {
	Recorder
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Activity], error)
	Find(ctx context.Context, id int64) (*Activity, error)
}
