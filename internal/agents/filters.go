package agents

import (
	"net/url"
	"strconv"

	"github.com/agentdeck/agentdeck/pkg/query"
)

// Filters contains optional filtering criteria for agent queries.
type Filters struct {
	Status   *Status
	Priority *Priority
	TypeID   *int64
	UserID   *int64
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Enumerated filters outside their closed set are ignored rather than applied.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := Status(values.Get("status")); s != "" && s.Validate() == nil {
		f.Status = &s
	}
	if p := Priority(values.Get("priority")); p != "" && p.Validate() == nil {
		f.Priority = &p
	}
	if v, err := strconv.ParseInt(values.Get("type_id"), 10, 64); err == nil {
		f.TypeID = &v
	}
	if v, err := strconv.ParseInt(values.Get("user_id"), 10, 64); err == nil {
		f.UserID = &v
	}

	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Status != nil {
		b.WhereEquals("Status", string(*f.Status))
	}
	if f.Priority != nil {
		b.WhereEquals("Priority", string(*f.Priority))
	}
	if f.TypeID != nil {
		b.WhereEquals("TypeID", *f.TypeID)
	}
	if f.UserID != nil {
		b.WhereEquals("UserID", *f.UserID)
	}
	return b
}
