package logmap

import (
	"github.com/agbru/logmap/internal/parallel"
)

// EvaluateSequential maps Evaluate over seeds on the calling goroutine, left
// to right. The result has the same length and order as seeds.
func EvaluateSequential(seeds []int64, iterations int64, p Params) []int64 {
	out := make([]int64, len(seeds))
	for i, x := range seeds {
		out[i] = Evaluate(x, iterations, p.Modulus, p.Multiplier)
	}
	return out
}

// EvaluateParallel maps Evaluate over seeds using rt. Every element is
// computed independently and written to its own index, so the result equals
// EvaluateSequential element for element. Either the whole batch succeeds or
// the error of the first failing chunk is returned and no values are.
func EvaluateParallel(rt *parallel.Runtime, seeds []int64, iterations int64, p Params) ([]int64, error) {
	out := make([]int64, len(seeds))
	err := rt.For(len(seeds), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = Evaluate(seeds[i], iterations, p.Modulus, p.Multiplier)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
