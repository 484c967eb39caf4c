package approvals

import (
	"github.com/agentdeck/agentdeck/pkg/query"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "approvals", "ap").
	Project("id", "ID").
	Project("task_id", "TaskID").
	Project("agent_id", "AgentID").
	Project("type", "Type").
	Project("title", "Title").
	Project("description", "Description").
	Project("status", "Status").
	Project("request_data", "RequestData").
	Project("suggested_response", "SuggestedResponse").
	Project("reviewed_by", "ReviewedBy").
	Project("reviewed_at", "ReviewedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Oldest pending items surface first in review queues.
var defaultSort = query.SortField{Field: "CreatedAt"}

func scanApproval(s repository.Scanner) (Approval, error) {
	var a Approval
	err := s.Scan(
		&a.ID,
		&a.TaskID,
		&a.AgentID,
		&a.Type,
		&a.Title,
		&a.Description,
		&a.Status,
		&a.RequestData,
		&a.SuggestedResponse,
		&a.ReviewedBy,
		&a.ReviewedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
