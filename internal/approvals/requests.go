package approvals

import (
	"github.com/agentdeck/agentdeck/pkg/jsonmap"
	"github.com/agentdeck/agentdeck/pkg/validation"
)

// CreateApprovalRequest contains the data required to open an approval.
// Status always starts as pending.
type CreateApprovalRequest struct {
	TaskID            *int64      `json:"taskId,omitempty"`
	AgentID           *int64      `json:"agentId,omitempty"`
	Type              string      `json:"type" validate:"required"`
	Title             string      `json:"title" validate:"required"`
	Description       *string     `json:"description,omitempty"`
	RequestData       jsonmap.Map `json:"requestData,omitempty"`
	SuggestedResponse *string     `json:"suggestedResponse,omitempty"`
}

// Validate checks the request against the data contract.
func (r *CreateApprovalRequest) Validate() error {
	return validation.Struct(r)
}

// ReviewRequest contains a reviewer's decision. The reviewer identity is
// optional; the contract does not require reviewer presence on approval.
type ReviewRequest struct {
	Status     Status `json:"status" validate:"required,oneof=approved rejected"`
	ReviewedBy *int64 `json:"reviewedBy,omitempty"`
}

// Validate checks the request against the data contract.
func (r *ReviewRequest) Validate() error {
	return validation.Struct(r)
}
