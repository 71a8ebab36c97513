package config

import (
	"testing"
	"time"
)

func TestLoad_valid(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 20s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.MaxBodySize != 2097152 {
		t.Errorf("Server.MaxBodySize = %d, want 2097152", cfg.Server.MaxBodySize)
	}
	if cfg.OpenAPI.Title != "Demo RPC Gateway" {
		t.Errorf("OpenAPI.Title = %q", cfg.OpenAPI.Title)
	}
	if cfg.Observability.Tracing.Exporter != "otlp" {
		t.Errorf("Observability.Tracing.Exporter = %q, want otlp", cfg.Observability.Tracing.Exporter)
	}
	if cfg.Observability.Tracing.SamplingRate != 0.25 {
		t.Errorf("Observability.Tracing.SamplingRate = %v, want 0.25", cfg.Observability.Tracing.SamplingRate)
	}

	// Values the YAML doesn't override should keep their defaults.
	if cfg.Server.CORS.MaxAge != 86400 {
		t.Errorf("Server.CORS.MaxAge = %d, want default 86400", cfg.Server.CORS.MaxAge)
	}
}

func TestLoad_missing_file(t *testing.T) {
	if _, err := Load("testdata/nonexistent.yaml"); err == nil {
		t.Fatal("Load() with missing file should return error")
	}
}

func TestLoad_invalid_fails_validation(t *testing.T) {
	if _, err := Load("testdata/invalid.yaml"); err == nil {
		t.Fatal("Load() with invalid config should return a validation error")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RPCAPI_SERVER_PORT", "7070")
	t.Setenv("RPCAPI_OBSERVABILITY_LOG_LEVEL", "warn")

	cfg := Defaults()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Observability.LogLevel != "warn" {
		t.Errorf("Observability.LogLevel = %q, want warn", cfg.Observability.LogLevel)
	}
}

func TestDefaultsPassValidation(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults() should pass validation, got: %v", err)
	}
}
