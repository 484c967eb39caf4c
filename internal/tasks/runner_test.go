package tasks

import (
	"context"
	"slices"
	"testing"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
)

func TestRegistryRegisterGet(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Get("echo"); ok {
		t.Error("Get() on empty registry = true, want false")
	}

	reg.Register("echo", RunnerFunc(func(ctx context.Context, task *Task) (jsonmap.Map, error) {
		return task.Payload, nil
	}))

	runner, ok := reg.Get("echo")
	if !ok {
		t.Fatal("Get() = false after Register, want true")
	}

	result, err := runner.Run(context.Background(), &Task{Payload: jsonmap.Map{"k": "v"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result["k"] != "v" {
		t.Errorf("Run() = %v, want payload echoed", result)
	}
}

func TestRegistryReplace(t *testing.T) {
	reg := NewRegistry()

	reg.Register("echo", RunnerFunc(func(ctx context.Context, task *Task) (jsonmap.Map, error) {
		return jsonmap.Map{"version": float64(1)}, nil
	}))
	reg.Register("echo", RunnerFunc(func(ctx context.Context, task *Task) (jsonmap.Map, error) {
		return jsonmap.Map{"version": float64(2)}, nil
	}))

	runner, _ := reg.Get("echo")
	result, _ := runner.Run(context.Background(), &Task{})
	if result["version"] != float64(2) {
		t.Errorf("Run() = %v, want latest registration", result)
	}
}

func TestRegistryTypes(t *testing.T) {
	reg := NewRegistry()
	noop := RunnerFunc(func(ctx context.Context, task *Task) (jsonmap.Map, error) {
		return nil, nil
	})

	reg.Register("echo", noop)
	reg.Register("digest", noop)

	types := reg.Types()
	slices.Sort(types)

	if len(types) != 2 || types[0] != "digest" || types[1] != "echo" {
		t.Errorf("Types() = %v, want [digest echo]", types)
	}
}
