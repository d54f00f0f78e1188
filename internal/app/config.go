package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that supply configuration defaults.
const (
	EnvLogLevel  = "BURSTBUILD_LOG_LEVEL"
	EnvLogFormat = "BURSTBUILD_LOG_FORMAT"
	EnvWorkers   = "BURSTBUILD_WORKERS"
)

var (
	logFormats    = []string{"text", "json"}
	outputFormats = []string{"text", "json", "yaml"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPaths []string // .hcl files or directories

	LogFormat string
	LogLevel  string
	Workers   int  // parallel stat calls
	Stat      bool // stat every node before reporting
	Output    string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogFormat: "text",
		LogLevel:  "info",
		Workers:   8,
		Output:    "text",
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format '%s': must be one of %v", cfg.LogFormat, logFormats)
	}
	if !slices.Contains(outputFormats, cfg.Output) {
		return nil, fmt.Errorf("invalid output format '%s': must be one of %v", cfg.Output, outputFormats)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("invalid worker count %d: must be at least 1", cfg.Workers)
	}
	cfg.ManifestPaths = slices.Clone(cfg.ManifestPaths)
	return &cfg, nil
}

// EnvDefaults returns DefaultConfig with BURSTBUILD_* overrides applied. The
// process environment wins over envFile, which is skipped if it does not exist.
// Command-line flags are expected to be applied on top of the result.
func EnvDefaults(envFile string) (Config, error) {
	cfg := DefaultConfig()

	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s '%s': %w", EnvWorkers, v, err)
		}
		cfg.Workers = n
	}
	return cfg, nil
}
