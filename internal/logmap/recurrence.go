package logmap

// Params are the per-call recurrence parameters.
type Params struct {
	Modulus    int64
	Multiplier int64
}

// Step applies the map once.
func Step(x, modulus, multiplier int64) int64 {
	return multiplier * x * (x + 1) % modulus
}

// Evaluate applies the map iterations times starting from seed. Zero or
// negative iteration counts return the seed unchanged.
func Evaluate(seed, iterations, modulus, multiplier int64) int64 {
	x := seed
	for i := int64(0); i < iterations; i++ {
		x = Step(x, modulus, multiplier)
	}
	return x
}
