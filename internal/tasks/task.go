// Package tasks provides the domain system for units of work: creation,
// querying, cancellation, and a polling dispatcher that moves tasks through
// their lifecycle by executing registered runners.
package tasks

import (
	"fmt"
	"time"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
)

// Status represents a task's lifecycle state. The lifecycle is strictly
// forward-moving: a task never leaves a terminal state.
type Status string

// Task status constants.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Validate checks that the status is one of the permitted values.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled:
		return nil
	default:
		return fmt.Errorf("invalid task status: %q (must be pending, processing, completed, failed, or cancelled)", s)
	}
}

// Terminal reports whether the status is an end state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Priority represents a task's scheduling priority. The set is closed.
type Priority string

// Task priority constants.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Validate checks that the priority is one of the permitted values.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	default:
		return fmt.Errorf("invalid task priority: %q (must be low, medium, or high)", p)
	}
}

// Task represents a unit of work, optionally tied to an agent and a user.
// Gated tasks stay out of dispatch until their approval is granted.
type Task struct {
	ID           int64       `json:"id"`
	AgentID      *int64      `json:"agentId,omitempty"`
	UserID       *int64      `json:"userId,omitempty"`
	Type         string      `json:"type"`
	Title        string      `json:"title"`
	Description  *string     `json:"description,omitempty"`
	Status       Status      `json:"status"`
	Priority     Priority    `json:"priority"`
	Payload      jsonmap.Map `json:"payload,omitempty"`
	Result       jsonmap.Map `json:"result,omitempty"`
	Error        *string     `json:"error,omitempty"`
	Gated        bool        `json:"gated"`
	ScheduledFor *time.Time  `json:"scheduledFor,omitempty"`
	StartedAt    *time.Time  `json:"startedAt,omitempty"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
	CreatedAt    *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time  `json:"updatedAt,omitempty"`
}
