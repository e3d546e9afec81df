package logger

import (
	"testing"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "debug", Format: "json"}, false},
		{"valid console", Config{Level: "info", Format: "console"}, false},
		{"bad level", Config{Level: "verbose", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "logfmt"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewWithInvalidLevelFallsBack(t *testing.T) {
	log := New(&Config{Level: "nonsense", Format: "json", Output: "stderr"})
	if log == nil {
		t.Fatal("expected a logger")
	}
	// Should not panic when logging.
	log.Info("hello")
}

func TestFields(t *testing.T) {
	m := Fields("service", "vmapi", "attempt", 2)
	if m["service"] != "vmapi" {
		t.Errorf("expected service=vmapi, got %v", m["service"])
	}
	if m["attempt"] != 2 {
		t.Errorf("expected attempt=2, got %v", m["attempt"])
	}

	// Odd trailing value is dropped.
	m = Fields("a", 1, "dangling")
	if len(m) != 1 {
		t.Errorf("expected 1 entry, got %d", len(m))
	}
}

func TestWithComponent(t *testing.T) {
	log := Nop().WithComponent("discovery")
	if log == nil {
		t.Fatal("expected a logger")
	}
	log.Debug("cache refresh")
}
