package agents

import (
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("type_id", "TypeID").
	Project("user_id", "UserID").
	Project("status", "Status").
	Project("priority", "Priority").
	Project("configuration", "Configuration").
	Project("security_config", "SecurityConfig").
	Project("last_activity", "LastActivity").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

func scanAgent(s repository.Scanner) (Agent, error) {
	var a Agent
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.TypeID,
		&a.UserID,
		&a.Status,
		&a.Priority,
		&a.Configuration,
		&a.SecurityConfig,
		&a.LastActivity,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
