package agents

import (
	"context"

	"github.com/agentdeck/agentdeck/pkg/pagination"
)

// System defines the interface for agent management operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)
	Find(ctx context.Context, id int64) (*Agent, error)
	Create(ctx context.Context, req CreateAgentRequest) (*Agent, error)
	Update(ctx context.Context, id int64, req UpdateAgentRequest) (*Agent, error)
	SetStatus(ctx context.Context, id int64, req SetStatusRequest) (*Agent, error)
	TouchActivity(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
