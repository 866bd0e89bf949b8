package label

import (
	"testing"
	"time"
)

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("LABELFORGE_CHUNK_BUDGET", "10s")
	t.Setenv("LABELFORGE_TOTAL_BUDGET", "2m")
	t.Setenv("LABELFORGE_CHUNK_CEILING", "50")
	t.Setenv("LABELFORGE_TEMPLATE_DIR", "/srv/templates")
	t.Setenv("LABELFORGE_DEFAULT_SCALE", "1.25")
	t.Setenv("LABELFORGE_LOG_LEVEL", "debug")

	cfg := ConfigFromEnvironment()
	if cfg.ChunkBudget != 10*time.Second {
		t.Errorf("ChunkBudget = %v", cfg.ChunkBudget)
	}
	if cfg.TotalBudget != 2*time.Minute {
		t.Errorf("TotalBudget = %v", cfg.TotalBudget)
	}
	if cfg.ChunkCeiling != 50 {
		t.Errorf("ChunkCeiling = %d", cfg.ChunkCeiling)
	}
	if cfg.TemplateDir != "/srv/templates" {
		t.Errorf("TemplateDir = %q", cfg.TemplateDir)
	}
	if cfg.DefaultScale != 1.25 {
		t.Errorf("DefaultScale = %v", cfg.DefaultScale)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestConfigFromEnvironmentIgnoresMalformed(t *testing.T) {
	t.Setenv("LABELFORGE_CHUNK_BUDGET", "soon")
	t.Setenv("LABELFORGE_CHUNK_CEILING", "-3")
	t.Setenv("LABELFORGE_DEFAULT_SCALE", "zero")

	cfg := ConfigFromEnvironment()
	def := DefaultConfig()
	if cfg.ChunkBudget != def.ChunkBudget {
		t.Errorf("malformed budget not ignored: %v", cfg.ChunkBudget)
	}
	if cfg.ChunkCeiling != def.ChunkCeiling {
		t.Errorf("non-positive ceiling not ignored: %d", cfg.ChunkCeiling)
	}
	if cfg.DefaultScale != def.DefaultScale {
		t.Errorf("malformed scale not ignored: %v", cfg.DefaultScale)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := DefaultConfig()
	bad.ChunkCeiling = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero ceiling accepted")
	}
	bad = DefaultConfig()
	bad.TotalBudget = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero total budget accepted")
	}
}
