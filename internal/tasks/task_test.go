package tasks

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatusValidate(t *testing.T) {
	tests := []struct {
		status  Status
		wantErr bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, false},
		{StatusFailed, false},
		{StatusCancelled, false},
		{"queued", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			err := tt.status.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Status(%q).Validate() = %v, wantErr %v", tt.status, err, tt.wantErr)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Status(%q).Terminal() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestCreateTaskRequestMinimal(t *testing.T) {
	req := CreateTaskRequest{Type: "email_digest", Title: "Morning digest"}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestCreateTaskRequestMissingType(t *testing.T) {
	req := CreateTaskRequest{Title: "Morning digest"}
	if err := req.Validate(); err == nil {
		t.Error("Validate() = nil, want error")
	}
}

func TestCreateTaskRequestMissingTitle(t *testing.T) {
	req := CreateTaskRequest{Type: "email_digest"}
	if err := req.Validate(); err == nil {
		t.Error("Validate() = nil, want error")
	}
}

func TestCreateTaskRequestOptionalPriority(t *testing.T) {
	req := CreateTaskRequest{Type: "email_digest", Title: "Morning digest"}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() with empty priority = %v, want nil", err)
	}

	req.Priority = "urgent"
	if err := req.Validate(); err == nil {
		t.Error("Validate() with priority outside closed set = nil, want error")
	}
}

func TestTaskJSONFieldNames(t *testing.T) {
	agentID := int64(4)
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	task := Task{ID: 1, AgentID: &agentID, Type: "email_digest", Title: "Morning digest",
		Status: StatusPending, Priority: PriorityMedium, CreatedAt: &now, UpdatedAt: &now}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, field := range []string{"id", "agentId", "type", "title", "status", "priority", "gated", "createdAt", "updatedAt"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("marshalled task missing field %q: %s", field, data)
		}
	}
	if _, ok := raw["scheduledFor"]; ok {
		t.Errorf("marshalled task includes absent optional field scheduledFor: %s", data)
	}
}

func TestTaskOmitsAbsentTimestamps(t *testing.T) {
	task := Task{ID: 2, Type: "email_digest", Title: "Morning digest",
		Status: StatusPending, Priority: PriorityLow}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, field := range []string{"startedAt", "completedAt", "createdAt", "updatedAt"} {
		if _, ok := raw[field]; ok {
			t.Errorf("marshalled task includes absent optional field %q: %s", field, data)
		}
	}
}
