package label

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config contains the tunables of the generation pipeline.
type Config struct {
	// ChunkBudget bounds the time spent on one chunk. Overruns curtail
	// that chunk's cosmetic passes only; core substitution always
	// completes.
	ChunkBudget time.Duration
	// TotalBudget bounds one whole generation call. Overruns stop
	// scheduling further chunks; the chunks already rendered are still
	// composed and returned.
	TotalBudget time.Duration
	// ChunkCeiling is an absolute upper bound on chunk size regardless
	// of grid capacity.
	ChunkCeiling int
	// TemplateDir optionally overrides the built-in base templates.
	// When set, <dir>/<orientation>.docx is used if it exists.
	TemplateDir string
	// DefaultScale is the scale factor applied when the caller passes
	// a non-positive one.
	DefaultScale float64
	// LogLevel controls logger verbosity (debug, info, warn, error).
	LogLevel string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkBudget:  30 * time.Second,
		TotalBudget:  300 * time.Second,
		ChunkCeiling: 100,
		DefaultScale: 1.0,
		LogLevel:     "info",
	}
}

// ConfigFromEnvironment builds a configuration from LABELFORGE_*
// environment variables, falling back to defaults for unset or
// malformed values.
func ConfigFromEnvironment() Config {
	cfg := DefaultConfig()

	if val := os.Getenv("LABELFORGE_CHUNK_BUDGET"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.ChunkBudget = d
		}
	}
	if val := os.Getenv("LABELFORGE_TOTAL_BUDGET"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.TotalBudget = d
		}
	}
	if val := os.Getenv("LABELFORGE_CHUNK_CEILING"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.ChunkCeiling = n
		}
	}
	if val := os.Getenv("LABELFORGE_TEMPLATE_DIR"); val != "" {
		cfg.TemplateDir = val
	}
	if val := os.Getenv("LABELFORGE_DEFAULT_SCALE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f > 0 {
			cfg.DefaultScale = f
		}
	}
	if val := os.Getenv("LABELFORGE_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}

	return cfg
}

// Validate checks the configuration for values the pipeline cannot
// run with.
func (c Config) Validate() error {
	if c.ChunkBudget <= 0 {
		return errors.New("chunk budget must be positive")
	}
	if c.TotalBudget <= 0 {
		return errors.New("total budget must be positive")
	}
	if c.ChunkCeiling <= 0 {
		return errors.New("chunk ceiling must be positive")
	}
	if c.DefaultScale <= 0 {
		return errors.New("default scale must be positive")
	}
	return nil
}
