// Package agents provides the domain system for managing automated agents:
// their lifecycle status, priority, and type-specific configuration.
package agents

import (
	"fmt"
	"time"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
)

// Status represents an agent's lifecycle state. The set is closed: any other
// value is invalid and is rejected, never coerced.
type Status string

// Agent status constants.
const (
	StatusInactive Status = "inactive"
	StatusActive   Status = "active"
	StatusError    Status = "error"
	StatusPaused   Status = "paused"
)

// Validate checks that the status is one of the permitted values.
func (s Status) Validate() error {
	switch s {
	case StatusInactive, StatusActive, StatusError, StatusPaused:
		return nil
	default:
		return fmt.Errorf("invalid agent status: %q (must be inactive, active, error, or paused)", s)
	}
}

// Priority represents an agent's scheduling priority. The set is closed.
type Priority string

// Agent priority constants.
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
		return fmt.Errorf("invalid agent priority: %q (must be low, medium, or high)", p)
	}
}

// Agent represents a managed automated actor.
type Agent struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Description    *string     `json:"description,omitempty"`
	TypeID         *int64      `json:"typeId,omitempty"`
	UserID         *int64      `json:"userId,omitempty"`
	Status         Status      `json:"status"`
	Priority       Priority    `json:"priority"`
	Configuration  jsonmap.Map `json:"configuration,omitempty"`
	SecurityConfig jsonmap.Map `json:"securityConfig,omitempty"`
	LastActivity   *time.Time  `json:"lastActivity,omitempty"`
	CreatedAt      *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time  `json:"updatedAt,omitempty"`
}

// ApprovalRequired reports whether the agent's security configuration gates
// its tasks behind a human approval.
func (a *Agent) ApprovalRequired() bool {
	v, ok := a.SecurityConfig["approvalRequired"].(bool)
	return ok && v
}

// SecurityConfig is the narrow security configuration shape accepted on
// create and update requests. All fields are optional booleans; the stored
// form remains an open mapping.
type SecurityConfig struct {
	ApprovalRequired *bool `json:"approvalRequired,omitempty"`
	Encryption       *bool `json:"encryption,omitempty"`
	RateLimiting     *bool `json:"rateLimiting,omitempty"`
	AuditLogging     *bool `json:"auditLogging,omitempty"`
}
