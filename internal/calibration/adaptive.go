package calibration

import (
	"runtime"

	"github.com/agbru/logmap/internal/config"
)

// GenerateGrainCandidates lists the grains to measure for this host. The
// first candidate is always config.SequentialGrain, a single chunk.
func GenerateGrainCandidates() []int {
	numCPU := runtime.NumCPU()
	candidates := []int{config.SequentialGrain}

	switch {
	case numCPU == 1:
		return candidates
	case numCPU <= 4:
		return append(candidates, 8192, 4096, 2048, 1024)
	case numCPU <= 8:
		return append(candidates, 8192, 4096, 2048, 1024, 512)
	default:
		return append(candidates, 8192, 4096, 2048, 1024, 512, 256)
	}
}

// GenerateQuickGrainCandidates is a reduced candidate set.
func GenerateQuickGrainCandidates() []int {
	if runtime.NumCPU() == 1 {
		return []int{config.SequentialGrain}
	}
	return []int{config.SequentialGrain, 4096, 1024}
}
