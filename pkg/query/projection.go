// Package query provides SQL query construction with field-to-column
// projection mapping and automatic parameter numbering.
package query

import (
	"fmt"
	"sort"
	"strings"
)

// ProjectionMap maps domain field names to database columns for a table.
// Columns retain declaration order for deterministic SELECT lists.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	fields map[string]string
	order  []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers a column-to-field mapping and returns the map for chaining.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	if _, exists := p.fields[field]; !exists {
		p.order = append(p.order, field)
	}
	p.fields[field] = column
	return p
}

// Table returns the aliased, schema-qualified table reference.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the aliased column for a field. Unknown fields fall back
// to the first projected column so generated SQL remains valid.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return fmt.Sprintf("%s.%s", p.alias, col)
	}
	if len(p.order) > 0 {
		return fmt.Sprintf("%s.%s", p.alias, p.fields[p.order[0]])
	}
	return ""
}

// Columns returns the comma-separated SELECT list in declaration order.
func (p *ProjectionMap) Columns() string {
	cols := make([]string, len(p.order))
	for i, field := range p.order {
		cols[i] = fmt.Sprintf("%s.%s", p.alias, p.fields[field])
	}
	return strings.Join(cols, ", ")
}

// Fields returns the projected field names in sorted order.
func (p *ProjectionMap) Fields() []string {
	fields := make([]string, 0, len(p.fields))
	for field := range p.fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// HasField reports whether the field is projected.
func (p *ProjectionMap) HasField(field string) bool {
	_, ok := p.fields[field]
	return ok
}
