package activities

import (
	"net/url"
	"strconv"

	"github.com/agentdeck/agentdeck/pkg/query"
)

// Filters contains optional filtering criteria for activity queries.
type Filters struct {
	UserID  *int64
	AgentID *int64
	TaskID  *int64
	Type    *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v, err := strconv.ParseInt(values.Get("user_id"), 10, 64); err == nil {
		f.UserID = &v
	}
	if v, err := strconv.ParseInt(values.Get("agent_id"), 10, 64); err == nil {
		f.AgentID = &v
	}
	if v, err := strconv.ParseInt(values.Get("task_id"), 10, 64); err == nil {
		f.TaskID = &v
	}
	if t := values.Get("type"); t != "" {
		f.Type = &t
	}

	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.UserID != nil {
		b.WhereEquals("UserID", *f.UserID)
	}
	if f.AgentID != nil {
		b.WhereEquals("AgentID", *f.AgentID)
	}
	if f.TaskID != nil {
		b.WhereEquals("TaskID", *f.TaskID)
	}
	if f.Type != nil {
		b.WhereEquals("Type", *f.Type)
	}
	return b
}
