package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"TABLUT_WORKERS", "TABLUT_TIMEOUT_S", "TABLUT_MARGIN_MS", "W_MATERIAL", "TABLUT_WHITE_PORT", "TABLUT_BLACK_PORT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Weights != DefaultWeights() {
		t.Fatalf("weights = %+v", cfg.Weights)
	}
	if cfg.Search.Workers < 1 {
		t.Fatalf("workers = %d", cfg.Search.Workers)
	}
	if got := cfg.Search.Budget(); got != 58*time.Second {
		t.Fatalf("budget = %v", got)
	}
	if cfg.Client.WhitePort != 5800 || cfg.Client.BlackPort != 5801 {
		t.Fatalf("ports = %d/%d", cfg.Client.WhitePort, cfg.Client.BlackPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TABLUT_WORKERS", "3")
	t.Setenv("TABLUT_TIMEOUT_S", "1")
	t.Setenv("TABLUT_MARGIN_MS", "950")
	t.Setenv("W_MATERIAL", "2.5")
	t.Setenv("TABLUT_REPEATED_ALLOWED", "not-a-number")
	cfg := Load()
	if cfg.Search.Workers != 3 || cfg.Weights.Material != 2.5 {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.Server.RepeatedAllowed != 2 {
		t.Fatalf("bad int should fall back to default, got %d", cfg.Server.RepeatedAllowed)
	}
	// 1s - 950ms 只剩 50ms，取下限
	if got := cfg.Search.Budget(); got != 100*time.Millisecond {
		t.Fatalf("budget = %v", got)
	}
}
