package approvals

import (
	"net/url"
	"strconv"

	"github.com/agentdeck/agentdeck/pkg/query"
)

// Filters contains optional filtering criteria for approval queries.
type Filters struct {
	Status  *Status
	Type    *string
	TaskID  *int64
	AgentID *int64
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Enumerated filters outside their closed set are ignored rather than applied.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := Status(values.Get("status")); s != "" && s.Validate() == nil {
		f.Status = &s
	}
	if t := values.Get("type"); t != "" {
		f.Type = &t
	}
	if v, err := strconv.ParseInt(values.Get("task_id"), 10, 64); err == nil {
		f.TaskID = &v
	}
	if v, err := strconv.ParseInt(values.Get("agent_id"), 10, 64); err == nil {
		f.AgentID = &v
	}

	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Status != nil {
		b.WhereEquals("Status", string(*f.Status))
	}
	if f.Type != nil {
		b.WhereEquals("Type", *f.Type)
	}
	if f.TaskID != nil {
		b.WhereEquals("TaskID", *f.TaskID)
	}
	if f.AgentID != nil {
		b.WhereEquals("AgentID", *f.AgentID)
	}
	return b
}
