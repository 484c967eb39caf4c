// Package lifecycle coordinates subsystem startup and graceful shutdown.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Coordinator tracks startup tasks and shutdown hooks across subsystems.
// Shutdown hooks receive cancellation through Context and must return once
// their cleanup completes.
type Coordinator struct {
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	startup []func()
	ready   atomic.Bool
	wg      sync.WaitGroup
}

// New creates a Coordinator with an active root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the root context cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether all startup tasks have completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup registers a task executed during WaitForStartup.
func (c *Coordinator) OnStartup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, fn)
}

// WaitForStartup runs all registered startup tasks and marks the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.mu.Lock()
	tasks := c.startup
	c.startup = nil
	c.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	c.ready.Store(true)
}

// OnShutdown registers a hook that runs in its own goroutine. Hooks typically
// block on Context().Done() and then perform cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// Shutdown cancels the root context and waits for all shutdown hooks to
// finish, returning an error if the timeout elapses first.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
