// Package approvals provides the human-review gate for agent actions. A
// pending approval holds its gated task out of dispatch until a reviewer
// approves or rejects it.
package approvals

import (
	"fmt"
	"time"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
)

// Status represents an approval's review state. The set is closed.
type Status string

// Approval status constants.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Validate checks that the status is one of the permitted values.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return nil
	default:
		return fmt.Errorf("invalid approval status: %q (must be pending, approved, or rejected)", s)
	}
}

// Approval represents a human-review gate, optionally tied to a task and/or
// agent. Reviewer fields stay empty until a reviewer acts.
type Approval struct {
	ID                int64       `json:"id"`
	TaskID            *int64      `json:"taskId,omitempty"`
	AgentID           *int64      `json:"agentId,omitempty"`
	Type              string      `json:"type"`
	Title             string      `json:"title"`
	Description       *string     `json:"description,omitempty"`
	Status            Status      `json:"status"`
	RequestData       jsonmap.Map `json:"requestData,omitempty"`
	SuggestedResponse *string     `json:"suggestedResponse,omitempty"`
	ReviewedBy        *int64      `json:"reviewedBy,omitempty"`
	ReviewedAt        *time.Time  `json:"reviewedAt,omitempty"`
	CreatedAt         *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time  `json:"updatedAt,omitempty"`
}
