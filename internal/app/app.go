// Package app wires configuration, the engine and the presentation layer
// into the logmap command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/logmap/internal/calibration"
	"github.com/agbru/logmap/internal/cli"
	"github.com/agbru/logmap/internal/config"
	"github.com/agbru/logmap/internal/engine"
	apperrors "github.com/agbru/logmap/internal/errors"
	"github.com/agbru/logmap/internal/logging"
	"github.com/agbru/logmap/internal/metrics"
	"github.com/agbru/logmap/internal/ui"
)

// Application represents the logmap application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Metrics   *metrics.Metrics
	logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithMetrics sets the metrics the engine records into.
func WithMetrics(m *metrics.Metrics) AppOption {
	return func(a *Application) { a.Metrics = m }
}

// WithLogger overrides the logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "logmap"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	cfg, _ = calibration.LoadCachedGrain(cfg, cfg.CalibrationProfile)
	app := &Application{
		Config:    config.ApplyAdaptiveDefaults(cfg),
		ErrWriter: errWriter,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Metrics == nil {
		app.Metrics = metrics.New()
	}
	if app.logger == nil {
		app.logger = newLogger(app.Config, errWriter)
	}
	return app, nil
}

// newLogger logs JSON in serve mode and human-readable lines otherwise.
func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	if cfg.Mode == config.ModeServe {
		return logging.NewLogger(w, "logmap")
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}
	return logging.NewZerologAdapter(zerolog.New(console).With().Timestamp().Logger())
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	level, _ := zerolog.ParseLevel(a.Config.LogLevel)
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Mode == config.ModeCalibrate {
		return a.runCalibration(ctx, out)
	}

	eng := engine.New(engine.Options{
		Workers:     a.Config.Workers,
		PoolSize:    a.Config.PoolSize,
		Grain:       a.Config.Grain,
		ErrorDetail: a.Config.ErrorDetail,
		Logger:      a.logger,
		Recorder:    a.Metrics,
	})
	defer eng.Close()

	switch a.Config.Mode {
	case config.ModeServe:
		return a.runServe(ctx, eng)
	case config.ModeDashboard:
		return a.runDashboard(ctx, eng)
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}
	res, err := a.runMode(ctx, eng, out)
	if err != nil {
		return cli.HandleError(err, a.ErrWriter)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, res, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
