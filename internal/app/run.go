package app

import (
	"context"
	"io"
	"time"

	"github.com/agbru/logmap/internal/calibration"
	"github.com/agbru/logmap/internal/cli"
	"github.com/agbru/logmap/internal/config"
	"github.com/agbru/logmap/internal/dispatch"
	"github.com/agbru/logmap/internal/engine"
	apperrors "github.com/agbru/logmap/internal/errors"
	"github.com/agbru/logmap/internal/logmap"
	"github.com/agbru/logmap/internal/metrics"
	"github.com/agbru/logmap/internal/server"
	"github.com/agbru/logmap/internal/sysmon"
	"github.com/agbru/logmap/internal/tui"
)

// runMode evaluates the configured operation. In verbose mode it also
// reports heap and host statistics around the run.
func (a *Application) runMode(ctx context.Context, eng *engine.Engine, out io.Writer) (cli.Result, error) {
	var in logmap.Input
	if a.Config.NeedsInput() {
		var err error
		if in, err = logmap.ParseText(a.Config.Input); err != nil {
			return cli.Result{}, err
		}
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	start := time.Now()

	res, err := a.evaluate(ctx, eng, in, out)
	if err != nil {
		return cli.Result{}, err
	}
	res.Operation = a.Config.Mode
	res.Duration = time.Since(start)

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(before, collector.Snapshot(), out)
		cli.DisplaySystemStats(sysmon.Sample(ctx), out)
	}
	return res, nil
}

func (a *Application) evaluate(ctx context.Context, eng *engine.Engine, in logmap.Input, out io.Writer) (cli.Result, error) {
	c := a.Config
	switch c.Mode {
	case config.ModeCalc:
		return cli.Result{Values: []int64{eng.Calc(c.Seed, c.Iterations, c.Modulus, c.Multiplier)}}, nil

	case config.ModeBatch:
		values, err := eng.MapCalcList(in, c.Iterations, c.Modulus, c.Multiplier)
		return cli.Result{Values: values}, err

	case config.ModeProject:
		data, err := eng.ToBinary(in)
		if err != nil {
			return cli.Result{}, err
		}
		values := make([]int64, len(data))
		for i, b := range data {
			values[i] = int64(b)
		}
		return cli.Result{Values: values}, nil

	case config.ModeBytes:
		buf, ok := in.(logmap.RawBytes)
		if !ok {
			return cli.Result{}, apperrors.NewInvalidInputError("bytes mode needs @file or a base64 string, got %T", in)
		}
		return cli.Result{Values: eng.MapCalcBinary(buf, c.Iterations, c.Modulus, c.Multiplier)}, nil

	case config.ModeIdentity:
		values, err := eng.CallEmpty(in, c.Modulus, c.Multiplier)
		return cli.Result{Values: values}, err

	case config.ModeAsync:
		return a.runAsync(ctx, eng, in, out)
	}
	return cli.Result{}, apperrors.NewConfigError("unknown mode %q", c.Mode)
}

// runAsync submits the batch to the dispatch pool and waits for the reply
// in a mailbox.
func (a *Application) runAsync(ctx context.Context, eng *engine.Engine, in logmap.Input, out io.Writer) (cli.Result, error) {
	c := a.Config
	mb := dispatch.NewMailbox()
	id, err := eng.MapCalcAsync(in, c.Iterations, c.Modulus, c.Multiplier, mb)
	if err != nil {
		return cli.Result{}, err
	}

	spinnerOut := out
	if c.Quiet {
		spinnerOut = io.Discard
	}
	reply, err := cli.AwaitReply(ctx, mb, id, c.Timeout, spinnerOut)
	if err != nil {
		return cli.Result{}, apperrors.WrapError(err, "await job %s", id)
	}
	if !reply.OK() {
		return cli.Result{}, reply.Err
	}
	return cli.Result{JobID: id.String(), Values: reply.Values}, nil
}

// runServe serves the HTTP API until ctx is canceled.
func (a *Application) runServe(ctx context.Context, eng *engine.Engine) int {
	srv := server.New(a.Config.Listen, eng, a.Metrics, a.logger)
	if err := srv.Run(ctx); err != nil {
		a.logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runCalibration measures the best grain and saves it for later runs.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	path := a.Config.CalibrationProfile
	if path == "" {
		path = calibration.GetDefaultProfilePath()
	}
	opts := calibration.DefaultOptions(a.Config)
	if _, err := calibration.RunCalibration(ctx, out, opts, path); err != nil {
		return cli.HandleError(err, a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// runDashboard opens the interactive dispatch monitor on the configured
// batch.
func (a *Application) runDashboard(ctx context.Context, eng *engine.Engine) int {
	in, err := logmap.ParseText(a.Config.Input)
	if err != nil {
		return cli.HandleError(err, a.ErrWriter)
	}
	return tui.Run(ctx, eng, in, a.Config, Version)
}
