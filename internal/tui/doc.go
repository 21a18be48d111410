// Package tui implements the interactive dashboard mode: it submits the
// configured batch to the dispatch pool on demand and shows job replies next
// to live pool and host statistics.
package tui
