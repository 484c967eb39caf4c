package tasks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agentdeck/agentdeck/internal/activities"
	"github.com/agentdeck/agentdeck/internal/agents"
	"github.com/agentdeck/agentdeck/pkg/jsonmap"
	"github.com/agentdeck/agentdeck/pkg/pagination"
	"github.com/agentdeck/agentdeck/pkg/repository"
)

// rowDriver is a minimal sql driver that answers every query with a single
// canned task row and counts transaction commits and rollbacks, so the
// transactional behavior of Create can be exercised without Postgres.
type rowDriver struct{}

var (
	registerRowDriver sync.Once
	txCounts          = &txState{}
)

type txState struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (s *txState) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits, s.rollbacks = 0, 0
}

func (s *txState) snapshot() (commits, rollbacks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits, s.rollbacks
}

func (rowDriver) Open(string) (driver.Conn, error) { return &rowConn{}, nil }

type rowConn struct{}

func (*rowConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (*rowConn) Close() error { return nil }

func (*rowConn) Begin() (driver.Tx, error) { return rowTx{}, nil }

func (*rowConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return &taskRow{}, nil
}

type rowTx struct{}

func (rowTx) Commit() error {
	txCounts.mu.Lock()
	defer txCounts.mu.Unlock()
	txCounts.commits++
	return nil
}

func (rowTx) Rollback() error {
	txCounts.mu.Lock()
	defer txCounts.mu.Unlock()
	txCounts.rollbacks++
	return nil
}

var taskRowColumns = []string{
	"id", "agent_id", "user_id", "type", "title", "description", "status",
	"priority", "payload", "result", "error", "gated", "scheduled_for",
	"started_at", "completed_at", "created_at", "updated_at",
}

type taskRow struct{ done bool }

func (r *taskRow) Columns() []string { return taskRowColumns }

func (r *taskRow) Close() error { return nil }

func (r *taskRow) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true

	now := time.Now()
	copy(dest, []driver.Value{
		int64(7), int64(3), nil, "email_digest", "Morning digest", nil,
		"pending", "medium", []byte(`{}`), nil, nil, true, nil, nil, nil,
		now, now,
	})
	return nil
}

func openRowDB(t *testing.T) *sql.DB {
	t.Helper()
	registerRowDriver.Do(func() { sql.Register("taskrow", rowDriver{}) })

	db, err := sql.Open("taskrow", "")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type fakeAgents struct {
	approvalRequired bool
}

func (f *fakeAgents) Find(ctx context.Context, id int64) (*agents.Agent, error) {
	return &agents.Agent{
		ID:             id,
		Name:           "Email Bot",
		Status:         agents.StatusActive,
		Priority:       agents.PriorityLow,
		SecurityConfig: jsonmap.Map{"approvalRequired": f.approvalRequired},
	}, nil
}

func (f *fakeAgents) List(ctx context.Context, page pagination.PageRequest, filters agents.Filters) (*pagination.PageResult[agents.Agent], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAgents) Create(ctx context.Context, req agents.CreateAgentRequest) (*agents.Agent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAgents) Update(ctx context.Context, id int64, req agents.UpdateAgentRequest) (*agents.Agent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAgents) SetStatus(ctx context.Context, id int64, req agents.SetStatusRequest) (*agents.Agent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAgents) TouchActivity(ctx context.Context, id int64) error { return nil }

func (f *fakeAgents) Delete(ctx context.Context, id int64) error { return nil }

type fakeRecorder struct{}

func (fakeRecorder) Record(ctx context.Context, cmd activities.RecordCommand) (*activities.Activity, error) {
	return &activities.Activity{}, nil
}

type failingGate struct{}

func (failingGate) OpenGate(ctx context.Context, q repository.Querier, t *Task) error {
	return errors.New("approval store unavailable")
}

type capturingGate struct {
	querier repository.Querier
	task    *Task
}

func (g *capturingGate) OpenGate(ctx context.Context, q repository.Querier, t *Task) error {
	g.querier = q
	g.task = t
	return nil
}

func TestCreateGateFailureRollsBackTask(t *testing.T) {
	txCounts.reset()

	sys := New(openRowDB(t), discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		fakeRecorder{}, &fakeAgents{approvalRequired: true})
	sys.BindGate(failingGate{})

	agentID := int64(3)
	_, err := sys.Create(context.Background(), CreateTaskRequest{
		AgentID: &agentID,
		Type:    "email_digest",
		Title:   "Morning digest",
	})
	if err == nil {
		t.Fatal("Create() error = nil, want gate failure")
	}

	commits, rollbacks := txCounts.snapshot()
	if commits != 0 {
		t.Errorf("commits = %d, want 0 when the approval gate cannot be opened", commits)
	}
	if rollbacks != 1 {
		t.Errorf("rollbacks = %d, want 1", rollbacks)
	}
}

func TestCreateOpensGateInSameTransaction(t *testing.T) {
	txCounts.reset()

	gate := &capturingGate{}
	sys := New(openRowDB(t), discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		fakeRecorder{}, &fakeAgents{approvalRequired: true})
	sys.BindGate(gate)

	agentID := int64(3)
	task, err := sys.Create(context.Background(), CreateTaskRequest{
		AgentID: &agentID,
		Type:    "email_digest",
		Title:   "Morning digest",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !task.Gated {
		t.Error("task.Gated = false, want true for approval-required agent")
	}
	if gate.task == nil || gate.task.ID != 7 {
		t.Errorf("gate opened for task %+v, want the inserted task", gate.task)
	}
	if _, ok := gate.querier.(*sql.Tx); !ok {
		t.Errorf("gate querier = %T, want the creating transaction", gate.querier)
	}

	commits, rollbacks := txCounts.snapshot()
	if commits != 1 {
		t.Errorf("commits = %d, want 1", commits)
	}
	if rollbacks != 0 {
		t.Errorf("rollbacks = %d, want 0", rollbacks)
	}
}
