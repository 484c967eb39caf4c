// Package agenttypes provides the domain system for agent type templates:
// reusable categories (icon, color, category label) that agents reference.
package agenttypes

import "time"

// AgentType represents a category or template describing a class of agents.
// Agents hold a weak reference to a type; the type never owns its agents.
type AgentType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
