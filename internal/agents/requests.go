package agents

import (
	"github.com/agentdeck/agentdeck/pkg/jsonmap"
	"github.com/agentdeck/agentdeck/pkg/validation"
)

// CreateAgentRequest contains the data required to create an agent.
// Server-assigned fields (id, status, timestamps) are excluded; status always
// starts as inactive.
type CreateAgentRequest struct {
	Name           string          `json:"name" validate:"required"`
	Description    *string         `json:"description,omitempty"`
	TypeID         *int64          `json:"typeId,omitempty"`
	UserID         *int64          `json:"userId,omitempty"`
	Priority       Priority        `json:"priority" validate:"required,oneof=low medium high"`
	Configuration  jsonmap.Map     `json:"configuration,omitempty"`
	SecurityConfig *SecurityConfig `json:"securityConfig,omitempty"`
}

// Validate checks the request against the data contract.
func (r *CreateAgentRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateAgentRequest contains the data required to update an existing agent.
// Status is managed through SetStatus, not update.
type UpdateAgentRequest struct {
	Name           string          `json:"name" validate:"required"`
	Description    *string         `json:"description,omitempty"`
	TypeID         *int64          `json:"typeId,omitempty"`
	Priority       Priority        `json:"priority" validate:"required,oneof=low medium high"`
	Configuration  jsonmap.Map     `json:"configuration,omitempty"`
	SecurityConfig *SecurityConfig `json:"securityConfig,omitempty"`
}

// Validate checks the request against the data contract.
func (r *UpdateAgentRequest) Validate() error {
	return validation.Struct(r)
}

// SetStatusRequest contains the target lifecycle status for an agent.
type SetStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=inactive active error paused"`
}

// Validate checks the request against the data contract.
func (r *SetStatusRequest) Validate() error {
	return validation.Struct(r)
}
