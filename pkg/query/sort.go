package query

import "strings"

// SortField represents a single sort instruction by domain field name.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
}

// ParseSortFields parses a comma-separated sort expression into sort fields.
// A "-" prefix marks a field as descending, e.g. "-created_at,name".
func ParseSortFields(expr string) []SortField {
	if expr == "" {
		return nil
	}

	parts := strings.Split(expr, ",")
	fields := make([]SortField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		descending := false
		if strings.HasPrefix(part, "-") {
			descending = true
			part = part[1:]
		}

		if part != "" {
			fields = append(fields, SortField{Field: part, Descending: descending})
		}
	}

	return fields
}
