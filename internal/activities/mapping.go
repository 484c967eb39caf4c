package activities

import (
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "activities", "a").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("agent_id", "AgentID").
	Project("task_id", "TaskID").
	Project("type", "Type").
	Project("message", "Message").
	Project("metadata", "Metadata").
	Project("created_at", "CreatedAt")

// Newest entries first; the audit log reads as a feed.
var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanActivity(s repository.Scanner) (Activity, error) {
	var a Activity
	err := s.Scan(
		&a.ID,
		&a.UserID,
		&a.AgentID,
		&a.TaskID,
		&a.Type,
		&a.Message,
		&a.Metadata,
		&a.CreatedAt,
	)
	return a, err
}
