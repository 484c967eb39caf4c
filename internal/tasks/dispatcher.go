package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/lifecycle"
	"github.com/agentdeck/agentdeck/pkg/jsonmap"
)

// Outcome writes get their own deadline. They must not ride on the polling
// loop's context, which shutdown cancels while runs are still draining.
const outcomeWriteTimeout = 10 * time.Second

// Dispatcher polls for due pending tasks, claims them, and executes their
// registered runners. Each claimed task runs in its own goroutine under a
// per-task timeout; in-flight runs are tracked so cancellation can reach them.
type Dispatcher struct {
	store   Store
	runners *Registry
	cfg     *config.DispatcherConfig
	logger  *slog.Logger

	mu     sync.Mutex
	active map[int64]context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given task store and runner
// registry.
func NewDispatcher(store Store, runners *Registry, cfg *config.DispatcherConfig, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:   store,
		runners: runners,
		cfg:     cfg,
		logger:  logger.With("system", "dispatcher"),
		active:  make(map[int64]context.CancelFunc),
	}
}

// Start launches the polling loop and registers a shutdown hook that waits
// for in-flight runs to drain.
func (d *Dispatcher) Start(lc *lifecycle.Coordinator) {
	if !d.cfg.Enabled {
		d.logger.Info("dispatcher disabled")
		return
	}

	ctx := lc.Context()

	// Rows left processing by an earlier crash can never be claimed again;
	// return them to pending before the loop starts polling.
	if n, err := d.store.Requeue(ctx); err != nil {
		d.logger.Error("failed to requeue stale tasks", "error", err)
	} else if n > 0 {
		d.logger.Info("requeued stale tasks", "count", n)
	}

	go d.loop(ctx)

	lc.OnShutdown(func() {
		<-ctx.Done()
		d.wg.Wait()
		d.logger.Info("dispatcher stopped")
	})

	d.logger.Info("dispatcher started",
		"poll_interval", d.cfg.PollInterval,
		"batch_size", d.cfg.BatchSize,
		"task_timeout", d.cfg.TaskTimeout,
	)
}

// CancelRun cancels the context of an in-flight task run. Returns false when
// the task is not currently running on this dispatcher.
func (d *Dispatcher) CancelRun(id int64) bool {
	d.mu.Lock()
	cancel, ok := d.active[id]
	d.mu.Unlock()

	if ok {
		cancel()
	}
	return ok
}

// Running returns the number of in-flight task runs.
func (d *Dispatcher) Running() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

func (d *Dispatcher) loop(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollIntervalDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.poll(ctx)
		}
	}
}

func (d *Dispatcher) poll(ctx context.Context) {
	claimed, err := d.store.Claim(ctx, d.cfg.BatchSize)
	if err != nil {
		d.logger.Error("failed to claim tasks", "error", err)
		return
	}

	for _, t := range claimed {
		d.wg.Add(1)
		go func(t Task) {
			defer d.wg.Done()
			d.run(ctx, t)
		}(t)
	}
}

func (d *Dispatcher) run(ctx context.Context, t Task) {
	runner, ok := d.runners.Get(t.Type)
	if !ok {
		d.writeOutcome(t.ID, nil, ErrNoRunner)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, d.cfg.TaskTimeoutDuration())
	d.track(t.ID, cancel)
	defer func() {
		cancel()
		d.untrack(t.ID)
	}()

	d.logger.Debug("running task", "id", t.ID, "type", t.Type)

	result, err := runner.Run(runCtx, &t)
	d.writeOutcome(t.ID, result, err)
}

// writeOutcome records the run result on a context detached from the polling
// loop, so runs drained during shutdown still land as failed or completed
// instead of staying processing forever. The writes are guarded on
// status = 'processing'; a task cancelled mid-run fails the guard with
// ErrNotPending and the cancelled status stands.
func (d *Dispatcher) writeOutcome(id int64, result jsonmap.Map, runErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), outcomeWriteTimeout)
	defer cancel()

	if runErr != nil {
		if _, err := d.store.Fail(ctx, id, runErr.Error()); err != nil {
			d.logOutcomeError("failed to mark task failed", id, err)
		}
		return
	}

	if _, err := d.store.Complete(ctx, id, result); err != nil {
		d.logOutcomeError("failed to mark task completed", id, err)
	}
}

func (d *Dispatcher) logOutcomeError(msg string, id int64, err error) {
	if errors.Is(err, ErrNotPending) {
		d.logger.Debug("task left processing during run", "id", id)
		return
	}
	d.logger.Error(msg, "id", id, "error", err)
}

func (d *Dispatcher) track(id int64, cancel context.CancelFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active[id] = cancel
}

func (d *Dispatcher) untrack(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.active, id)
}
