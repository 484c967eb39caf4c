package tasks

import (
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tasks", "t").
	Project("id", "ID").
	Project("agent_id", "AgentID").
	Project("user_id", "UserID").
	Project("type", "Type").
	Project("title", "Title").
	Project("description", "Description").
	Project("status", "Status").
	Project("priority", "Priority").
	Project("payload", "Payload").
	Project("result", "Result").
	Project("error", "Error").
	Project("gated", "Gated").
	Project("scheduled_for", "ScheduledFor").
	Project("started_at", "StartedAt").
	Project("completed_at", "CompletedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Newest tasks first; the task list reads as a queue history.
var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanTask(s repository.Scanner) (Task, error) {
	var t Task
	err := s.Scan(
		&t.ID,
		&t.AgentID,
		&t.UserID,
		&t.Type,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.Payload,
		&t.Result,
		&t.Error,
		&t.Gated,
		&t.ScheduledFor,
		&t.StartedAt,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
