// Package logmap evaluates the iterated modular map
//
//	x <- (mu * x * (x + 1)) mod p
//
// over batches of int64 seeds.
//
// All arithmetic is fixed-width int64: products wrap on overflow and the
// remainder takes the sign of the dividend, exactly as the Go operators do.
// Callers must pass a nonzero modulus; a zero modulus panics like any integer
// division by zero.
//
// Seeds arrive as one of three shapes (an inclusive Range, an explicit List,
// or RawBytes) and are normalized once into a canonical []int64 that every
// evaluator consumes. Output index i always corresponds to canonical index i.
package logmap
