package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/logmap/internal/config"
	"github.com/agbru/logmap/internal/logmap"
	"github.com/agbru/logmap/internal/parallel"
)

// Options configures a calibration run.
type Options struct {
	Workers    int
	Seeds      int
	Iterations int64
	Params     logmap.Params
	// Rounds is how many times each grain is timed; the fastest counts.
	Rounds     int
	Candidates []int
}

// DefaultOptions returns options sized for cfg.
func DefaultOptions(cfg config.AppConfig) Options {
	return Options{
		Workers:    cfg.Workers,
		Seeds:      1 << 16,
		Iterations: max(cfg.Iterations, 64),
		Params:     logmap.Params{Modulus: cfg.Modulus, Multiplier: cfg.Multiplier},
		Rounds:     3,
		Candidates: GenerateGrainCandidates(),
	}
}

// Measurement is the best time observed for one grain.
type Measurement struct {
	Grain    int
	Duration time.Duration
	Err      error
}

// Run times every candidate grain on a synthetic batch and returns a
// profile holding the fastest one. Cancellation is checked between
// measurements.
func Run(ctx context.Context, opts Options) (*CalibrationProfile, []Measurement, error) {
	start := time.Now()
	seeds := make([]int64, opts.Seeds)
	for i := range seeds {
		seeds[i] = int64(i)
	}

	results := make([]Measurement, 0, len(opts.Candidates))
	best := -1
	for _, grain := range opts.Candidates {
		if err := ctx.Err(); err != nil {
			return nil, results, err
		}
		res := measure(grain, seeds, opts)
		results = append(results, res)
		if res.Err == nil && (best < 0 || res.Duration < results[best].Duration) {
			best = len(results) - 1
		}
	}
	if best < 0 {
		return nil, results, fmt.Errorf("calibration: every candidate failed")
	}

	p := NewProfile()
	p.Workers = opts.Workers
	p.OptimalGrain = results[best].Grain
	p.CalibrationSeeds = opts.Seeds
	p.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	return p, results, nil
}

func measure(grain int, seeds []int64, opts Options) Measurement {
	rt := parallel.NewBootstrap(opts.Workers, parallel.WithGrain(grain)).Runtime()
	res := Measurement{Grain: grain}
	for r := 0; r < max(opts.Rounds, 1); r++ {
		t0 := time.Now()
		if _, err := logmap.EvaluateParallel(rt, seeds, opts.Iterations, opts.Params); err != nil {
			res.Err = err
			return res
		}
		if d := time.Since(t0); r == 0 || d < res.Duration {
			res.Duration = d
		}
	}
	return res
}

// RunCalibration measures, prints the summary to out and saves the profile
// to path.
func RunCalibration(ctx context.Context, out io.Writer, opts Options, path string) (*CalibrationProfile, error) {
	fmt.Fprintf(out, "Calibrating grain over %d seeds with %d workers...\n", opts.Seeds, opts.Workers)
	p, results, err := Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	printCalibrationResults(out, results, p.OptimalGrain)
	if err := p.SaveProfile(path); err != nil {
		return p, err
	}
	printCalibrationOutput(out, p, path)
	return p, nil
}

// LoadCachedGrain applies a valid, fresh profile from path to cfg when no
// grain was requested explicitly and the profile was measured with the same
// worker count.
func LoadCachedGrain(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if cfg.Grain != 0 {
		return cfg, false
	}
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(DefaultMaxAge) || p.Workers != cfg.Workers {
		return cfg, false
	}
	cfg.Grain = p.OptimalGrain
	return cfg, true
}
