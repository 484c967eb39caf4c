package validation

import (
	"errors"
	"strings"
	"testing"
)

type payload struct {
	Name     string `json:"name" validate:"required"`
	Priority string `json:"priority" validate:"required,oneof=low medium high"`
	Note     string `json:"note,omitempty"`
}

func TestStructValid(t *testing.T) {
	err := Struct(&payload{Name: "Email Bot", Priority: "high"})
	if err != nil {
		t.Errorf("Struct() = %v, want nil", err)
	}
}

func TestStructMissingRequired(t *testing.T) {
	err := Struct(&payload{Priority: "high"})
	if err == nil {
		t.Fatal("Struct() = nil, want error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Struct() error type = %T, want *Error", err)
	}
	if len(verr.Fields) != 1 {
		t.Fatalf("Fields = %v, want one entry", verr.Fields)
	}
	if verr.Fields[0].Field != "name" {
		t.Errorf("Field = %q, want %q", verr.Fields[0].Field, "name")
	}
	if verr.Fields[0].Message != "is required" {
		t.Errorf("Message = %q, want %q", verr.Fields[0].Message, "is required")
	}
}

func TestStructClosedSet(t *testing.T) {
	err := Struct(&payload{Name: "Email Bot", Priority: "urgent"})
	if err == nil {
		t.Fatal("Struct() = nil, want error for priority outside closed set")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Struct() error type = %T, want *Error", err)
	}
	if verr.Fields[0].Field != "priority" {
		t.Errorf("Field = %q, want %q", verr.Fields[0].Field, "priority")
	}
	if want := "must be one of [low medium high]"; verr.Fields[0].Message != want {
		t.Errorf("Message = %q, want %q", verr.Fields[0].Message, want)
	}
}

func TestStructMultipleFailures(t *testing.T) {
	err := Struct(&payload{})
	if err == nil {
		t.Fatal("Struct() = nil, want error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Struct() error type = %T, want *Error", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("Fields = %v, want two entries", verr.Fields)
	}
	if !strings.HasPrefix(verr.Error(), "validation failed: ") {
		t.Errorf("Error() = %q, want validation failed prefix", verr.Error())
	}
}

func TestIs(t *testing.T) {
	if !Is(Struct(&payload{})) {
		t.Error("Is() = false for validation error, want true")
	}
	if Is(errors.New("boom")) {
		t.Error("Is() = true for unrelated error, want false")
	}
	if Is(nil) {
		t.Error("Is() = true for nil, want false")
	}
}
