// Package server binds the engine's operations to HTTP. Synchronous
// operations answer in the response; asynchronous jobs are parked on a
// JobBoard and fetched by ID with optional long-polling.
package server
