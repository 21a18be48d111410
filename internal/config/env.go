// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the LOGMAP_ prefix) to the flag
// name(s) it shadows and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func int64Env(dst *int64) func(string) {
	return func(v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = parsed
		}
	}
}

func intEnv(dst *int) func(string) {
	return func(v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) { int64Env(&c.Seed)(v) }},
	{"ITERATIONS", []string{"iterations", "n"}, func(c *AppConfig, v string) { int64Env(&c.Iterations)(v) }},
	{"MODULUS", []string{"modulus", "p"}, func(c *AppConfig, v string) { int64Env(&c.Modulus)(v) }},
	{"MULTIPLIER", []string{"multiplier", "mu"}, func(c *AppConfig, v string) { int64Env(&c.Multiplier)(v) }},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) { intEnv(&c.Workers)(v) }},
	{"POOL_SIZE", []string{"pool"}, func(c *AppConfig, v string) { intEnv(&c.PoolSize)(v) }},
	{"GRAIN", []string{"grain"}, func(c *AppConfig, v string) { intEnv(&c.Grain)(v) }},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"MODE", []string{"mode"}, func(c *AppConfig, v string) { c.Mode = v }},
	{"INPUT", []string{"input", "i"}, func(c *AppConfig, v string) { c.Input = v }},
	{"LISTEN", []string{"listen"}, func(c *AppConfig, v string) { c.Listen = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) { c.Theme = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},

	// Boolean overrides
	{"ERROR_DETAIL", []string{"error-detail"}, func(c *AppConfig, v string) {
		c.ErrorDetail = parseBoolEnv(v, c.ErrorDetail)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv accepts "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive). Anything else yields defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with LOGMAP_):
//   - MODE, INPUT, SEED, ITERATIONS, MODULUS, MULTIPLIER, WORKERS,
//     POOL_SIZE, GRAIN, TIMEOUT, LISTEN, OUTPUT, LOG_LEVEL, THEME,
//     CALIBRATION_PROFILE, ERROR_DETAIL, QUIET, VERBOSE, NO_COLOR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
