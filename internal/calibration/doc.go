// Package calibration measures the parallel grain that evaluates batches
// fastest on this machine and caches it in a JSON profile so later runs can
// skip the measurement.
package calibration
