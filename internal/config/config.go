// Package config parses the logmap command line and environment into an
// AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/logmap/internal/dispatch"
	apperrors "github.com/agbru/logmap/internal/errors"
	"github.com/agbru/logmap/internal/parallel"
	"github.com/agbru/logmap/internal/ui"
)

// EnvPrefix prefixes every environment variable read by ParseConfig.
const EnvPrefix = "LOGMAP_"

// Modes.
const (
	ModeCalc      = "calc"
	ModeBatch     = "batch"
	ModeProject   = "project"
	ModeBytes     = "bytes"
	ModeIdentity  = "identity"
	ModeAsync     = "async"
	ModeServe     = "serve"
	ModeCalibrate = "calibrate"
	ModeDashboard = "dashboard"
)

// Modes lists every accepted mode in display order.
var Modes = []string{ModeCalc, ModeBatch, ModeProject, ModeBytes, ModeIdentity, ModeAsync, ModeServe, ModeCalibrate, ModeDashboard}

// Defaults.
const (
	DefaultMode       = ModeBatch
	DefaultIterations = 3
	DefaultModulus    = 97
	DefaultMultiplier = 4
	DefaultTimeout    = 30 * time.Second
	DefaultListen     = ":8080"
	DefaultLogLevel   = "info"
	DefaultTheme      = ui.ThemeDark
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	Mode        string
	Input       string
	Seed        int64
	Iterations  int64
	Modulus     int64
	Multiplier  int64
	Workers     int
	PoolSize    int
	Grain       int
	ErrorDetail bool
	Timeout     time.Duration
	Listen      string
	OutputFile  string
	LogLevel    string
	Theme       string
	Quiet       bool
	Verbose     bool
	NoColor     bool
	ShowVersion bool

	// CalibrationProfile is the grain profile path; empty selects the
	// default location.
	CalibrationProfile string
}

// Evaluates reports whether the mode runs the recurrence and therefore needs
// a nonzero modulus.
func (c AppConfig) Evaluates() bool {
	switch c.Mode {
	case ModeCalc, ModeBatch, ModeBytes, ModeAsync, ModeCalibrate, ModeDashboard:
		return true
	}
	return false
}

// NeedsInput reports whether the mode reads a batch from -input.
func (c AppConfig) NeedsInput() bool {
	switch c.Mode {
	case ModeBatch, ModeProject, ModeBytes, ModeIdentity, ModeAsync, ModeDashboard:
		return true
	}
	return false
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if !slices.Contains(Modes, c.Mode) {
		return apperrors.NewConfigError("unknown mode %q (want one of %s)", c.Mode, strings.Join(Modes, ", "))
	}
	if c.NeedsInput() && c.Input == "" {
		return apperrors.NewConfigError("mode %q requires -input", c.Mode)
	}
	if c.Evaluates() && c.Modulus == 0 {
		return apperrors.ValidationError{Field: "modulus", Message: "must be nonzero"}
	}
	if c.Iterations < 0 {
		return apperrors.ValidationError{Field: "iterations", Message: "must be >= 0"}
	}
	if c.Workers < 1 {
		return apperrors.ValidationError{Field: "workers", Message: "must be >= 1"}
	}
	if c.PoolSize < 1 {
		return apperrors.ValidationError{Field: "pool", Message: "must be >= 1"}
	}
	if c.Grain < 0 {
		return apperrors.ValidationError{Field: "grain", Message: "must be >= 0"}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.ValidationError{Field: "log-level", Message: err.Error()}
	}
	if !ui.IsTheme(c.Theme) {
		return apperrors.ValidationError{Field: "theme", Message: "must be one of " + strings.Join(ui.ThemeNames, ", ")}
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig. The
// first argument may name the mode; otherwise -mode or LOGMAP_MODE does.
// Precedence is flags, then environment, then defaults.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [mode] [flags]\n\nModes: %s\n\nFlags:\n", programName, strings.Join(Modes, ", "))
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.StringVar(&config.Mode, "mode", DefaultMode, "Operation mode.")
	fs.StringVar(&config.Input, "input", "", "Batch input: A..B, @file, or JSON (array, {\"first\",\"last\"} object, base64 string).")
	fs.StringVar(&config.Input, "i", "", "Batch input (shorthand).")
	fs.Int64Var(&config.Seed, "seed", 1, "Seed for calc mode.")
	fs.Int64Var(&config.Iterations, "iterations", DefaultIterations, "Number of iterations per seed.")
	fs.Int64Var(&config.Iterations, "n", DefaultIterations, "Number of iterations per seed (shorthand).")
	fs.Int64Var(&config.Modulus, "modulus", DefaultModulus, "Modulus p of the map.")
	fs.Int64Var(&config.Modulus, "p", DefaultModulus, "Modulus p of the map (shorthand).")
	fs.Int64Var(&config.Multiplier, "multiplier", DefaultMultiplier, "Multiplier mu of the map.")
	fs.Int64Var(&config.Multiplier, "mu", DefaultMultiplier, "Multiplier mu of the map (shorthand).")
	fs.IntVar(&config.Workers, "workers", parallel.DefaultWorkers, "Data-parallel runtime size.")
	fs.IntVar(&config.PoolSize, "pool", dispatch.DefaultWorkers, "Dispatch pool size.")
	fs.IntVar(&config.Grain, "grain", 0, "Minimum seeds per parallel chunk (0 = adaptive).")
	fs.BoolVar(&config.ErrorDetail, "error-detail", false, "Keep the failure cause in asynchronous replies.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "How long async mode waits for its reply.")
	fs.StringVar(&config.Listen, "listen", DefaultListen, "Listen address for serve mode.")
	fs.StringVar(&config.OutputFile, "output", "", "Write results to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Write results to this file (shorthand).")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Grain calibration profile (default ~/.logmap_calibration.json).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare values only.")
	fs.BoolVar(&config.Quiet, "q", false, "Print bare values only (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print timing and system statistics.")
	fs.BoolVar(&config.Verbose, "v", false, "Print timing and system statistics (shorthand).")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme ("+strings.Join(ui.ThemeNames, ", ")+").")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")

	var positionalMode string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		positionalMode, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	applyEnvOverrides(&config, fs)
	if positionalMode != "" {
		config.Mode = positionalMode
	}
	config.Mode = strings.ToLower(config.Mode)
	config.Theme = strings.ToLower(config.Theme)

	if config.ShowVersion {
		return config, nil
	}
	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}
