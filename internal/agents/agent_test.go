package agents

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
)

func TestStatusValidate(t *testing.T) {
	tests := []struct {
		status  Status
		wantErr bool
	}{
		{StatusInactive, false},
		{StatusActive, false},
		{StatusError, false},
		{StatusPaused, false},
		{"running", true},
		{"", true},
		{"Active", true},
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

func TestPriorityValidate(t *testing.T) {
	tests := []struct {
		priority Priority
		wantErr  bool
	}{
		{PriorityLow, false},
		{PriorityMedium, false},
		{PriorityHigh, false},
		{"urgent", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			err := tt.priority.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Priority(%q).Validate() = %v, wantErr %v", tt.priority, err, tt.wantErr)
			}
		})
	}
}

func TestApprovalRequired(t *testing.T) {
	tests := []struct {
		name   string
		config jsonmap.Map
		want   bool
	}{
		{"enabled", jsonmap.Map{"approvalRequired": true}, true},
		{"disabled", jsonmap.Map{"approvalRequired": false}, false},
		{"absent", jsonmap.Map{}, false},
		{"nil config", nil, false},
		{"wrong type", jsonmap.Map{"approvalRequired": "yes"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Agent{SecurityConfig: tt.config}
			if got := a.ApprovalRequired(); got != tt.want {
				t.Errorf("ApprovalRequired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAgentJSONRoundTrip(t *testing.T) {
	desc := "handles inbound email"
	typeID := int64(3)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	original := Agent{
		ID:             7,
		Name:           "Email Bot",
		Description:    &desc,
		TypeID:         &typeID,
		Status:         StatusActive,
		Priority:       PriorityHigh,
		Configuration:  jsonmap.Map{"mailbox": "support", "batch": float64(25)},
		SecurityConfig: jsonmap.Map{"approvalRequired": true},
		LastActivity:   &now,
		CreatedAt:      &now,
		UpdatedAt:      &now,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Agent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}

func TestAgentJSONFieldNames(t *testing.T) {
	typeID := int64(3)
	userID := int64(9)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := Agent{ID: 1, Name: "Email Bot", TypeID: &typeID, UserID: &userID,
		Status: StatusActive, Priority: PriorityLow, CreatedAt: &now, UpdatedAt: &now}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, field := range []string{"id", "name", "typeId", "userId", "status", "priority", "createdAt", "updatedAt"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("marshalled agent missing field %q: %s", field, data)
		}
	}
}

func TestAgentOmitsAbsentTimestamps(t *testing.T) {
	a := Agent{ID: 1, Name: "Email Bot", Status: StatusInactive, Priority: PriorityLow}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, field := range []string{"lastActivity", "createdAt", "updatedAt"} {
		if _, ok := raw[field]; ok {
			t.Errorf("marshalled agent includes absent optional field %q: %s", field, data)
		}
	}
}
