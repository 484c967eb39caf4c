package tasks

import (
	"context"
	"sync"

	"github.com/agentdeck/agentdeck/pkg/jsonmap"
)

// Runner executes a single task and produces its result. Implementations must
// honor context cancellation: a cancelled task's context is cancelled mid-run.
type Runner interface {
	Run(ctx context.Context, t *Task) (jsonmap.Map, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, t *Task) (jsonmap.Map, error)

// Run executes the function.
func (f RunnerFunc) Run(ctx context.Context, t *Task) (jsonmap.Map, error) {
	return f(ctx, t)
}

// Registry maps task types to their runners.
type Registry struct {
	mu      sync.RWMutex
	runners map[string]Runner
}

// NewRegistry creates an empty runner registry.
func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[string]Runner),
	}
}

// Register associates a runner with a task type, replacing any previous
// registration for that type.
func (r *Registry) Register(taskType string, runner Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners[taskType] = runner
}

// Get returns the runner registered for a task type.
func (r *Registry) Get(taskType string) (Runner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	runner, ok := r.runners[taskType]
	return runner, ok
}

// Types returns the registered task types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.runners))
	for t := range r.runners {
		types = append(types, t)
	}
	return types
}
