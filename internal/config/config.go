package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/jacobi/grid"
	"github.com/katalvlaran/jacobi/gridio"
	"github.com/katalvlaran/jacobi/internal/logging"
)

// EnvPrefix is prepended to environment overrides, e.g. JACOBI_SOLVER_THRESHOLD.
const EnvPrefix = "JACOBI"

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the complete solver configuration
type Config struct {
	Grid    GridConfig    `mapstructure:"grid"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Bench   BenchConfig   `mapstructure:"bench"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GridConfig describes the input and output grid files
type GridConfig struct {
	// Size is the side length N of the square grid (default: 1024)
	Size int `mapstructure:"size"`
	// Input is the path of the initial grid (default: "input.mtx")
	Input string `mapstructure:"input"`
	// Output is the path the relaxed grid is written to (default: "output.mtx")
	Output string `mapstructure:"output"`
	// Precision is the number of decimals per written value (default: 10)
	Precision int `mapstructure:"precision"`
}

// SolverConfig controls a single relaxation run
type SolverConfig struct {
	// Threshold is the convergence tolerance on the spread (default: 0.00001)
	Threshold float64 `mapstructure:"threshold"`
	// Threads is the number of workers for `run` (default: 1)
	Threads int `mapstructure:"threads"`
	// Policy selects remainder-row handling: "balanced" or "truncate" (default: "balanced")
	Policy string `mapstructure:"policy"`
	// MaxIterations caps the loop, 0 = unlimited (default: 0)
	MaxIterations int `mapstructure:"max_iterations"`
	// StopOnZeroSpread stops when the spread is exactly 0; only safe on grids
	// already at rest (default: false)
	StopOnZeroSpread bool `mapstructure:"stop_on_zero_spread"`
	// StallWarning logs a warning when no barrier round completes in this interval, 0 = off
	StallWarning time.Duration `mapstructure:"stall_warning"`
}

// BenchConfig controls the benchmark loop
type BenchConfig struct {
	// MaxThreads is the largest thread count; runs go 1..MaxThreads (default: 10)
	MaxThreads int `mapstructure:"max_threads"`
	// Report is an optional YAML report path (default: "" = none)
	Report string `mapstructure:"report"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	// Level is the minimum level: DEBUG, INFO, WARN, ERROR (default: INFO)
	Level string `mapstructure:"level"`
	// File is a JSON log file path; empty logs text to stderr (default: "")
	File string `mapstructure:"file"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Size:      1024,
			Input:     "input.mtx",
			Output:    "output.mtx",
			Precision: gridio.DefaultPrecision,
		},
		Solver: SolverConfig{
			Threshold:        0.00001,
			Threads:          1,
			Policy:           grid.PolicyBalanced.String(),
			MaxIterations:    0,
			StopOnZeroSpread: false,
			StallWarning:     0,
		},
		Bench: BenchConfig{
			MaxThreads: 10,
			Report:     "",
		},
		Logging: LoggingConfig{
			Level: logging.LevelInfo,
			File:  "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("grid.size", defaults.Grid.Size)
	viper.SetDefault("grid.input", defaults.Grid.Input)
	viper.SetDefault("grid.output", defaults.Grid.Output)
	viper.SetDefault("grid.precision", defaults.Grid.Precision)

	viper.SetDefault("solver.threshold", defaults.Solver.Threshold)
	viper.SetDefault("solver.threads", defaults.Solver.Threads)
	viper.SetDefault("solver.policy", defaults.Solver.Policy)
	viper.SetDefault("solver.max_iterations", defaults.Solver.MaxIterations)
	viper.SetDefault("solver.stop_on_zero_spread", defaults.Solver.StopOnZeroSpread)
	viper.SetDefault("solver.stall_warning", defaults.Solver.StallWarning)

	viper.SetDefault("bench.max_threads", defaults.Bench.MaxThreads)
	viper.SetDefault("bench.report", defaults.Bench.Report)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper
func Load() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks ranges and enumerations. Every violation is reported.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Size < 3 {
		errs = append(errs, fmt.Errorf("grid.size must be >= 3, got %d", c.Grid.Size))
	}
	if c.Grid.Input == "" {
		errs = append(errs, errors.New("grid.input must not be empty"))
	}
	if c.Grid.Precision < 0 || c.Grid.Precision > 17 {
		errs = append(errs, fmt.Errorf("grid.precision must be in [0, 17], got %d", c.Grid.Precision))
	}
	if math.IsNaN(c.Solver.Threshold) || math.IsInf(c.Solver.Threshold, 0) || c.Solver.Threshold < 0 {
		errs = append(errs, fmt.Errorf("solver.threshold must be finite and >= 0, got %g", c.Solver.Threshold))
	}
	if c.Solver.Threads < 1 {
		errs = append(errs, fmt.Errorf("solver.threads must be >= 1, got %d", c.Solver.Threads))
	}
	if _, err := grid.ParsePolicy(c.Solver.Policy); err != nil {
		errs = append(errs, fmt.Errorf("solver.policy: %w", err))
	}
	if c.Solver.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("solver.max_iterations must be >= 0, got %d", c.Solver.MaxIterations))
	}
	if c.Solver.StallWarning < 0 {
		errs = append(errs, fmt.Errorf("solver.stall_warning must be >= 0, got %s", c.Solver.StallWarning))
	}
	if c.Bench.MaxThreads < 1 {
		errs = append(errs, fmt.Errorf("bench.max_threads must be >= 1, got %d", c.Bench.MaxThreads))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Policy returns the parsed remainder policy. Call after Validate.
func (c *Config) Policy() grid.RemainderPolicy {
	p, _ := grid.ParsePolicy(c.Solver.Policy)
	return p
}

// ConfigDir returns the configuration directory path
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jacobi")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jacobi")
}
