package logger

import (
	"errors"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %q, want console", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("Output = %q, want stdout", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("Timestamp not enabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "info", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("invalid level accepted")
	}

	cfg.Level = "info"
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("invalid format accepted")
	}
}

func TestFields(t *testing.T) {
	m := Fields("status", 200, "url", "http://example.com")
	if m["status"] != 200 {
		t.Errorf("status = %v, want 200", m["status"])
	}
	if m["url"] != "http://example.com" {
		t.Errorf("url = %v", m["url"])
	}

	// odd trailing value is dropped
	m = Fields("a", 1, "dangling")
	if _, ok := m["dangling"]; ok {
		t.Error("dangling key should be ignored")
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("fetch", errors.New("boom"))
	if m[FieldOperation] != "fetch" {
		t.Errorf("operation = %v", m[FieldOperation])
	}
	if m[FieldError] != "boom" {
		t.Errorf("error = %v", m[FieldError])
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("fetch", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("duration_ms = %v, want 1500", m[FieldDuration])
	}
}

func TestNew_LevelFallback(t *testing.T) {
	l := New(&Config{Level: "nonsense", Format: "json"}, "test")
	if l == nil {
		t.Fatal("New returned nil")
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("test").WithComponent("client")
	if l == nil {
		t.Fatal("WithComponent returned nil")
	}
}
