package agenttypes

import "github.com/agentdeck/agentdeck/pkg/validation"

// CreateAgentTypeRequest contains the data required to create an agent type.
type CreateAgentTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// Validate checks the request against the data contract.
func (r *CreateAgentTypeRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateAgentTypeRequest contains the data required to update an agent type.
type UpdateAgentTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// Validate checks the request against the data contract.
func (r *UpdateAgentTypeRequest) Validate() error {
	return validation.Struct(r)
}
