package agenttypes

import (
	"context"

	"github.com/agentdeck/agentdeck/pkg/pagination"
)

// System defines the interface for agent type storage and retrieval operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[AgentType], error)
	Find(ctx context.Context, id int64) (*AgentType, error)
	Create(ctx context.Context, req CreateAgentTypeRequest) (*AgentType, error)
	Update(ctx context.Context, id int64, req UpdateAgentTypeRequest) (*AgentType, error)
	Delete(ctx context.Context, id int64) error
}
