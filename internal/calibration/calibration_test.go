package calibration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/agbru/logmap/internal/config"
	"github.com/agbru/logmap/internal/logmap"
)

func smallOptions() Options {
	return Options{
		Workers:    2,
		Seeds:      256,
		Iterations: 8,
		Params:     logmap.Params{Modulus: 97, Multiplier: 4},
		Rounds:     1,
		Candidates: []int{config.SequentialGrain, 64},
	}
}

func TestGenerateGrainCandidates(t *testing.T) {
	t.Parallel()
	for name, candidates := range map[string][]int{
		"full":  GenerateGrainCandidates(),
		"quick": GenerateQuickGrainCandidates(),
	} {
		if len(candidates) == 0 || candidates[0] != config.SequentialGrain {
			t.Errorf("%s: candidates must start with the sequential grain, got %v", name, candidates)
		}
		for _, g := range candidates {
			if g <= 0 {
				t.Errorf("%s: non-positive grain %d", name, g)
			}
		}
		if runtime.NumCPU() == 1 && len(candidates) != 1 {
			t.Errorf("%s: single CPU should only measure sequential, got %v", name, candidates)
		}
	}
}

func TestRun_PicksAMeasuredGrain(t *testing.T) {
	t.Parallel()
	opts := smallOptions()
	p, results, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(opts.Candidates) {
		t.Fatalf("got %d results, want %d", len(results), len(opts.Candidates))
	}
	found := false
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("grain %d failed: %v", r.Grain, r.Err)
		}
		if r.Grain == p.OptimalGrain {
			found = true
		}
	}
	if !found {
		t.Errorf("optimal grain %d was not measured", p.OptimalGrain)
	}
	if p.Workers != 2 || p.CalibrationSeeds != 256 {
		t.Errorf("profile = %+v", p)
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Run(ctx, smallOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRun_AllCandidatesFail(t *testing.T) {
	t.Parallel()
	opts := smallOptions()
	opts.Params.Modulus = 0
	if _, results, err := Run(context.Background(), opts); err == nil {
		t.Error("expected an error when every measurement fails")
	} else if len(results) != len(opts.Candidates) {
		t.Errorf("results = %d", len(results))
	}
}

func TestRunCalibration_SavesProfile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	var out bytes.Buffer

	p, err := RunCalibration(context.Background(), &out, smallOptions(), path)
	if err != nil {
		t.Fatalf("RunCalibration: %v", err)
	}
	for _, want := range []string{"Calibration Summary", "Sequential", "(Optimal)", path} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	loaded, err := loadProfile(path)
	if err != nil || loaded.OptimalGrain != p.OptimalGrain {
		t.Errorf("loaded %+v, err %v", loaded, err)
	}
}

func TestLoadCachedGrain(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	p := NewProfile()
	p.Workers = 4
	p.OptimalGrain = 777
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		cfg    config.AppConfig
		path   string
		want   int
		loaded bool
	}{
		{"applies", config.AppConfig{Workers: 4}, path, 777, true},
		{"explicit grain wins", config.AppConfig{Workers: 4, Grain: 10}, path, 10, false},
		{"worker mismatch", config.AppConfig{Workers: 8}, path, 0, false},
		{"missing file", config.AppConfig{Workers: 4}, filepath.Join(t.TempDir(), "none.json"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, loaded := LoadCachedGrain(tt.cfg, tt.path)
			if got.Grain != tt.want || loaded != tt.loaded {
				t.Errorf("grain=%d loaded=%v, want %d %v", got.Grain, loaded, tt.want, tt.loaded)
			}
		})
	}
}
