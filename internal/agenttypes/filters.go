package agenttypes

import (
	"net/url"

	"github.com/agentdeck/agentdeck/pkg/query"
)

// Filters contains optional filtering criteria for agent type queries.
type Filters struct {
	Category *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var category *string
	if c := values.Get("category"); c != "" {
		category = &c
	}

	return Filters{
		Category: category,
	}
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Category != nil {
		b.WhereEquals("Category", *f.Category)
	}
	return b
}
