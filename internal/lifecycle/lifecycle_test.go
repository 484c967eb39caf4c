package lifecycle

import (
	"testing"
	"time"
)

func TestWaitForStartupRunsTasks(t *testing.T) {
	c := New()

	ran := false
	c.OnStartup(func() { ran = true })

	if c.Ready() {
		t.Error("Ready() = true before startup, want false")
	}

	c.WaitForStartup()

	if !ran {
		t.Error("startup task did not run")
	}
	if !c.Ready() {
		t.Error("Ready() = false after startup, want true")
	}
}

func TestShutdownCancelsContext(t *testing.T) {
	c := New()

	done := make(chan struct{})
	c.OnShutdown(func() {
		<-c.Context().Done()
		close(done)
	})

	if err := c.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown() = %v, want nil", err)
	}

	select {
	case <-done:
	default:
		t.Error("shutdown hook did not observe context cancellation")
	}
}

func TestShutdownTimeout(t *testing.T) {
	c := New()

	block := make(chan struct{})
	c.OnShutdown(func() {
		<-block
	})

	err := c.Shutdown(10 * time.Millisecond)
	close(block)

	if err == nil {
		t.Error("Shutdown() = nil, want timeout error")
	}
}
