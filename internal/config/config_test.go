package config

import (
	"testing"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("ShutdownTimeout = %q, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Pagination.DefaultPageSize != 20 {
		t.Errorf("Pagination.DefaultPageSize = %d, want 20", cfg.Pagination.DefaultPageSize)
	}
	if cfg.Dispatcher.PollInterval != "5s" {
		t.Errorf("Dispatcher.PollInterval = %q, want 5s", cfg.Dispatcher.PollInterval)
	}
}

func TestConfigFinalizeEnvOverride(t *testing.T) {
	t.Setenv(EnvServerPort, "9090")
	t.Setenv(EnvServiceShutdownTimeout, "10s")

	var cfg Config
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.ShutdownTimeout != "10s" {
		t.Errorf("ShutdownTimeout = %q, want 10s", cfg.ShutdownTimeout)
	}
}

func TestConfigMerge(t *testing.T) {
	base := Config{
		Version:         "0.1.0",
		Server:          ServerConfig{Host: "0.0.0.0", Port: 8080},
		ShutdownTimeout: "30s",
	}
	overlay := Config{
		Server: ServerConfig{Port: 9000},
	}

	base.Merge(&overlay)

	if base.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", base.Server.Port)
	}
	if base.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want base value retained", base.Server.Host)
	}
	if base.Version != "0.1.0" {
		t.Errorf("Version = %q, want base value retained", base.Version)
	}
}

func TestConfigInvalidShutdownTimeout(t *testing.T) {
	cfg := Config{ShutdownTimeout: "soon"}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() = nil, want error for invalid duration")
	}
}

func TestServerMaxBodySizeBytes(t *testing.T) {
	cfg := ServerConfig{MaxBodySize: "1MB"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if got := cfg.MaxBodySizeBytes(); got != 1000000 {
		t.Errorf("MaxBodySizeBytes() = %d, want 1000000", got)
	}
}

func TestDispatcherConfigValidate(t *testing.T) {
	cfg := DispatcherConfig{PollInterval: "every minute"}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() = nil, want error for invalid poll_interval")
	}

	cfg = DispatcherConfig{BatchSize: -1}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() = nil, want error for negative batch_size")
	}
}

func TestLoggingConfigValidate(t *testing.T) {
	cfg := LoggingConfig{Level: "verbose"}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() = nil, want error for unknown level")
	}

	cfg = LoggingConfig{Level: "debug", Format: "json"}
	if err := cfg.Finalize(); err != nil {
		t.Errorf("Finalize() = %v, want nil", err)
	}
}

func TestDatabaseDsn(t *testing.T) {
	cfg := DatabaseConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	dsn := cfg.Dsn()
	if dsn == "" {
		t.Fatal("Dsn() = empty")
	}
}
