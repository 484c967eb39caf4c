// Command server runs the agent management HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentdeck/agentdeck/internal/api"
	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/infrastructure"
	"github.com/agentdeck/agentdeck/internal/tasks"
	"github.com/agentdeck/agentdeck/pkg/jsonmap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("finalize config: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return err
	}
	if err := infra.Start(); err != nil {
		return err
	}

	app := api.New(cfg, infra)
	registerRunners(app.Runners)

	if err := app.Start(); err != nil {
		return err
	}

	infra.Lifecycle.WaitForStartup()
	infra.Logger.Info("service started", "version", cfg.Version, "addr", cfg.Server.Addr())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	infra.Logger.Info("shutdown signal received")
	return infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
}

// registerRunners installs the built-in task runners. Additional task types
// are registered here as they are implemented.
func registerRunners(registry *tasks.Registry) {
	// echo copies the payload into the result, useful for smoke-testing the
	// dispatch pipeline end to end.
	registry.Register("echo", tasks.RunnerFunc(func(ctx context.Context, t *tasks.Task) (jsonmap.Map, error) {
		return t.Payload, nil
	}))
}
