// Package activities provides the append-only audit log. Entries record
// something that happened, referencing the user, agent, or task involved.
// Entries are write-once: no operation mutates or deletes them.
package activities

import (
	"time"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
	"github.com/agentdeck/agentdeck/pkg/validation"
)

// Activity represents an immutable audit log entry.
type Activity struct {
	ID        int64       `json:"id"`
	UserID    *int64      `json:"userId,omitempty"`
	AgentID   *int64      `json:"agentId,omitempty"`
	TaskID    *int64      `json:"taskId,omitempty"`
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Metadata  jsonmap.Map `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// RecordCommand contains the data required to record an activity.
type RecordCommand struct {
	UserID   *int64      `json:"userId,omitempty"`
	AgentID  *int64      `json:"agentId,omitempty"`
	TaskID   *int64      `json:"taskId,omitempty"`
	Type     string      `json:"type" validate:"required"`
	Message  string      `json:"message" validate:"required"`
	Metadata jsonmap.Map `json:"metadata,omitempty"`
}

// Validate checks the command against the data contract.
func (c *RecordCommand) Validate() error {
	return validation.Struct(c)
}
