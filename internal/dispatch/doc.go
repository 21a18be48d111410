// Package dispatch runs batch jobs asynchronously on a small fixed pool of
// workers and delivers each result to the reply target captured when the job
// was submitted.
//
// A job moves through Captured, Queued and Running before it ends in either
// Delivered or DeliveredError. Submit never blocks: jobs wait in an unbounded
// FIFO queue until a worker is free. Queued and running jobs cannot be
// canceled; Close stops intake and waits for the queue to drain.
package dispatch
