package config

import "runtime"

// Grain resolution chain (highest priority first):
//   1. CLI flag (-grain)
//   2. Environment variable (LOGMAP_GRAIN)
//   3. Cached calibration profile (internal/calibration)
//   4. Adaptive hardware estimation (this file)

// SequentialGrain is large enough that any realistic batch runs as a single
// chunk.
const SequentialGrain = 1 << 30

// ApplyAdaptiveDefaults fills the parallel grain from the host's CPU count
// when it was left at zero. User-specified values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Grain == 0 {
		cfg.Grain = EstimateOptimalGrain()
	}
	return cfg
}

// EstimateOptimalGrain provides a heuristic estimate of the smallest batch
// slice worth handing to its own goroutine, without running benchmarks.
// One evaluation costs a few nanoseconds per iteration, so chunks must be
// large before fan-out pays off on small machines.
func EstimateOptimalGrain() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return SequentialGrain // No parallelism
	case numCPU <= 2:
		return 8192
	case numCPU <= 4:
		return 4096
	case numCPU <= 8:
		return 2048
	case numCPU <= 16:
		return 1024
	default:
		return 512
	}
}
