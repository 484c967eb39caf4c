package tasks

import (
	"time"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
	"github.com/agentdeck/agentdeck/pkg/validation"
)

// CreateTaskRequest contains the data required to create a task. Status always
// starts as pending; priority defaults to medium when omitted.
type CreateTaskRequest struct {
	AgentID      *int64      `json:"agentId,omitempty"`
	UserID       *int64      `json:"userId,omitempty"`
	Type         string      `json:"type" validate:"required"`
	Title        string      `json:"title" validate:"required"`
	Description  *string     `json:"description,omitempty"`
	Priority     Priority    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Payload      jsonmap.Map `json:"payload,omitempty"`
	ScheduledFor *time.Time  `json:"scheduledFor,omitempty"`
}

// Validate checks the request against the data contract.
func (r *CreateTaskRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateTaskRequest contains the mutable fields of a pending task. Running and
// terminal tasks cannot be updated.
type UpdateTaskRequest struct {
	Title        string      `json:"title" validate:"required"`
	Description  *string     `json:"description,omitempty"`
	Priority     Priority    `json:"priority" validate:"required,oneof=low medium high"`
	Payload      jsonmap.Map `json:"payload,omitempty"`
	ScheduledFor *time.Time  `json:"scheduledFor,omitempty"`
}

// Validate checks the request against the data contract.
func (r *UpdateTaskRequest) Validate() error {
	return validation.Struct(r)
}
