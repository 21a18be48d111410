// Package engine is the single entry point that hosts (the CLI, the HTTP
// server, embedding programs) use to reach the batch operations. It owns the
// runtime bootstrap and the dispatch pool and wires them together.
package engine
