package query

import (
	"reflect"
	"testing"
)

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []SortField
	}{
		{"empty", "", nil},
		{"single", "name", []SortField{{Field: "name"}}},
		{"descending", "-created_at", []SortField{{Field: "created_at", Descending: true}}},
		{"multiple", "-created_at,name", []SortField{
			{Field: "created_at", Descending: true},
			{Field: "name"},
		}},
		{"whitespace", " name , -status ", []SortField{
			{Field: "name"},
			{Field: "status", Descending: true},
		}},
		{"bare dash", "-", []SortField{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSortFields(tt.expr)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}
