package pagination

import (
	"net/url"
	"testing"
)

func testConfig() Config {
	return Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, 20},
		{"negative page", -5, 10, 1, 10},
		{"over max", 1, 500, 1, 100},
		{"valid", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PageRequest{Page: tt.page, PageSize: tt.pageSize}
			r.Normalize(testConfig())

			if r.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", r.Page, tt.wantPage)
			}
			if r.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", r.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	r := PageRequest{Page: 3, PageSize: 25}
	if got := r.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "bot")
	values.Set("sort", "-created_at,name")

	req := PageRequestFromQuery(values, testConfig())

	if req.Page != 2 {
		t.Errorf("Page = %d, want 2", req.Page)
	}
	if req.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", req.PageSize)
	}
	if req.Search == nil || *req.Search != "bot" {
		t.Errorf("Search = %v, want bot", req.Search)
	}
	if len(req.Sort) != 2 || req.Sort[0].Field != "created_at" || !req.Sort[0].Descending {
		t.Errorf("Sort = %v, want [-created_at name]", req.Sort)
	}
}

func TestPageRequestFromQueryDefaults(t *testing.T) {
	req := PageRequestFromQuery(url.Values{}, testConfig())

	if req.Page != 1 {
		t.Errorf("Page = %d, want 1", req.Page)
	}
	if req.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact division", 100, 20, 5},
		{"with remainder", 101, 20, 6},
		{"empty", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestNewPageResultNilData(t *testing.T) {
	result := NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("Data = nil, want empty slice")
	}
}
