package agents

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentdeck/agentdeck/pkg/pagination"
)

type fakeSystem struct {
	agents map[int64]*Agent
	nextID int64
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{agents: make(map[int64]*Agent), nextID: 1}
}

func (f *fakeSystem) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	data := make([]Agent, 0, len(f.agents))
	for _, a := range f.agents {
		data = append(data, *a)
	}
	result := pagination.NewPageResult(data, len(data), 1, 20)
	return &result, nil
}

func (f *fakeSystem) Find(ctx context.Context, id int64) (*Agent, error) {
	a, ok := f.agents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (f *fakeSystem) Create(ctx context.Context, req CreateAgentRequest) (*Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a := &Agent{ID: f.nextID, Name: req.Name, Status: StatusInactive, Priority: req.Priority}
	f.agents[a.ID] = a
	f.nextID++
	return a, nil
}

func (f *fakeSystem) Update(ctx context.Context, id int64, req UpdateAgentRequest) (*Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a, ok := f.agents[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Name = req.Name
	a.Priority = req.Priority
	return a, nil
}

func (f *fakeSystem) SetStatus(ctx context.Context, id int64, req SetStatusRequest) (*Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a, ok := f.agents[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Status = req.Status
	return a, nil
}

func (f *fakeSystem) TouchActivity(ctx context.Context, id int64) error {
	if _, ok := f.agents[id]; !ok {
		return ErrNotFound
	}
	return nil
}

func (f *fakeSystem) Delete(ctx context.Context, id int64) error {
	if _, ok := f.agents[id]; !ok {
		return ErrNotFound
	}
	delete(f.agents, id)
	return nil
}

func testHandler(sys System) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestHandlerCreate(t *testing.T) {
	h := testHandler(newFakeSystem())

	body := `{"name": "Email Bot", "priority": "high"}`
	r := httptest.NewRequest("POST", "/api/agents", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body)
	}

	var a Agent
	if err := json.NewDecoder(w.Body).Decode(&a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.Status != StatusInactive {
		t.Errorf("Status = %q, want %q", a.Status, StatusInactive)
	}
}

func TestHandlerCreateInvalidPriority(t *testing.T) {
	h := testHandler(newFakeSystem())

	body := `{"name": "Email Bot", "priority": "urgent"}`
	r := httptest.NewRequest("POST", "/api/agents", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Create status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp["error"], "priority") {
		t.Errorf("error = %q, want offending field named", resp["error"])
	}
}

func TestHandlerCreateMalformedJSON(t *testing.T) {
	h := testHandler(newFakeSystem())

	r := httptest.NewRequest("POST", "/api/agents", strings.NewReader("{"))
	w := httptest.NewRecorder()

	h.Create(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Create status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandlerFindNotFound(t *testing.T) {
	h := testHandler(newFakeSystem())

	r := httptest.NewRequest("GET", "/api/agents/99", nil)
	r.SetPathValue("id", "99")
	w := httptest.NewRecorder()

	h.Find(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("Find status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandlerFindBadID(t *testing.T) {
	h := testHandler(newFakeSystem())

	r := httptest.NewRequest("GET", "/api/agents/abc", nil)
	r.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	h.Find(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Find status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandlerSetStatus(t *testing.T) {
	sys := newFakeSystem()
	sys.agents[1] = &Agent{ID: 1, Name: "Email Bot", Status: StatusInactive, Priority: PriorityLow}
	h := testHandler(sys)

	body := `{"status": "active"}`
	r := httptest.NewRequest("PATCH", "/api/agents/1/status", strings.NewReader(body))
	r.SetPathValue("id", "1")
	w := httptest.NewRecorder()

	h.SetStatus(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("SetStatus status = %d, want %d: %s", w.Code, http.StatusOK, w.Body)
	}

	var a Agent
	if err := json.NewDecoder(w.Body).Decode(&a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.Status != StatusActive {
		t.Errorf("Status = %q, want %q", a.Status, StatusActive)
	}
}

func TestHandlerSetStatusClosedSet(t *testing.T) {
	sys := newFakeSystem()
	sys.agents[1] = &Agent{ID: 1, Name: "Email Bot", Status: StatusInactive, Priority: PriorityLow}
	h := testHandler(sys)

	body := `{"status": "running"}`
	r := httptest.NewRequest("PATCH", "/api/agents/1/status", strings.NewReader(body))
	r.SetPathValue("id", "1")
	w := httptest.NewRecorder()

	h.SetStatus(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("SetStatus status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandlerDelete(t *testing.T) {
	sys := newFakeSystem()
	sys.agents[1] = &Agent{ID: 1, Name: "Email Bot", Status: StatusInactive, Priority: PriorityLow}
	h := testHandler(sys)

	r := httptest.NewRequest("DELETE", "/api/agents/1", nil)
	r.SetPathValue("id", "1")
	w := httptest.NewRecorder()

	h.Delete(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("Delete status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if len(sys.agents) != 0 {
		t.Errorf("agents = %v, want empty after delete", sys.agents)
	}
}

func TestHandlerList(t *testing.T) {
	sys := newFakeSystem()
	sys.agents[1] = &Agent{ID: 1, Name: "Email Bot", Status: StatusActive, Priority: PriorityLow}
	h := testHandler(sys)

	r := httptest.NewRequest("GET", "/api/agents", nil)
	w := httptest.NewRecorder()

	h.List(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("List status = %d, want %d", w.Code, http.StatusOK)
	}

	var result pagination.PageResult[Agent]
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("Total = %d, want 1", result.Total)
	}
}
