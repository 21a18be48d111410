// Package parallel provides the data-parallel runtime used to fan out the
// independent per-seed computations of one batch, and the one-shot
// Bootstrap that fixes its worker count for the lifetime of the process.
package parallel
