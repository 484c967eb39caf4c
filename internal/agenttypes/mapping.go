package agenttypes

import (
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agent_types", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("icon", "Icon").
	Project("color", "Color").
	Project("category", "Category").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

func scanAgentType(s repository.Scanner) (AgentType, error) {
	var t AgentType
	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Icon,
		&t.Color,
		&t.Category,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
