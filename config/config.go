// Package config loads solver, logging and output settings for the
// command-line tools.
//
// Priority (highest to lowest):
//  1. Environment variables with MATHFIN_ prefix (e.g. MATHFIN_SOLVER_TOLERANCE)
//  2. The config file passed to Load (yaml, toml or json by extension)
//  3. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/meenmo/mathfinance/logging"
	"github.com/meenmo/mathfinance/solver"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "MATHFIN"

// Config is the complete tool configuration.
type Config struct {
	Solver SolverConfig
	Log    LogConfig
	Output OutputConfig
}

// SolverConfig holds Newton-Raphson parameters.
type SolverConfig struct {
	// MaxIterations caps the number of Newton steps per solve.
	MaxIterations int
	// Tolerance is the relative error at which a solve has converged.
	Tolerance float64
	// DivergenceWindow is how many consecutive growing errors count as
	// divergence. Values below 2 disable the check.
	DivergenceWindow int
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	// Precision is the number of decimal places numbers are rounded to.
	Precision int32
}

// Default returns the built-in configuration.
func Default() Config {
	log := logging.DefaultConfig()
	return Config{
		Solver: SolverConfig{
			MaxIterations:    solver.DefaultMaxIterations,
			Tolerance:        solver.DefaultTolerance,
			DivergenceWindow: solver.DefaultDivergenceWindow,
		},
		Log: LogConfig{
			Level:  log.Level,
			Format: log.Format,
			Output: log.Output,
		},
		Output: OutputConfig{Precision: 10},
	}
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Solver: SolverConfig{
			MaxIterations:    v.GetInt("solver.max_iterations"),
			Tolerance:        v.GetFloat64("solver.tolerance"),
			DivergenceWindow: v.GetInt("solver.divergence_window"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Output: OutputConfig{
			Precision: v.GetInt32("output.precision"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("solver.max_iterations", d.Solver.MaxIterations)
	v.SetDefault("solver.tolerance", d.Solver.Tolerance)
	v.SetDefault("solver.divergence_window", d.Solver.DivergenceWindow)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
	v.SetDefault("output.precision", d.Output.Precision)
}

// Validate performs validation on the configuration.
func (c Config) Validate() error {
	var errs []error

	if c.Solver.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("solver.max_iterations must be positive"))
	}
	if !(c.Solver.Tolerance > 0) || math.IsInf(c.Solver.Tolerance, 0) {
		errs = append(errs, fmt.Errorf("solver.tolerance must be a positive number"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 16 {
		errs = append(errs, fmt.Errorf("output.precision must be between 0 and 16, got %d", c.Output.Precision))
	}

	return errors.Join(errs...)
}

// Solver converts the settings into a solver.Config that traces to logger.
func (s SolverConfig) Solver(logger *zap.Logger) solver.Config {
	return solver.Config{
		MaxIterations:    s.MaxIterations,
		Tolerance:        s.Tolerance,
		DivergenceWindow: s.DivergenceWindow,
		Logger:           logger,
	}
}

// Logging converts the settings into a logging.Config.
func (l LogConfig) Logging() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format, Output: l.Output}
}
