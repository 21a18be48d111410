package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/logmap/internal/errors"
	"github.com/agbru/logmap/internal/logging"
	"github.com/agbru/logmap/internal/logmap"
	"github.com/agbru/logmap/internal/parallel"
)

// DefaultWorkers is the size of the dispatch pool.
const DefaultWorkers = 2

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("dispatcher closed")

type evaluateFunc func(rt *parallel.Runtime, seeds []int64, iterations int64, p logmap.Params) ([]int64, error)

// Dispatcher owns the dispatch pool. Its workers start in New and stop in
// Close once every queued job has been delivered.
type Dispatcher struct {
	src         RuntimeSource
	workers     int
	errorDetail bool
	logger      logging.Logger
	recorder    Recorder
	tracer      trace.Tracer
	evaluate    evaluateFunc

	queue     *queue[*job]
	busy      atomic.Int32
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithWorkers sets the pool size. Values below 1 are clamped to 1.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n < 1 {
			n = 1
		}
		d.workers = n
	}
}

// WithErrorDetail makes failure replies wrap the underlying cause in
// addition to ErrBatchFailed.
func WithErrorDetail(enabled bool) Option {
	return func(d *Dispatcher) { d.errorDetail = enabled }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = t }
}

func withEvaluator(f evaluateFunc) Option {
	return func(d *Dispatcher) { d.evaluate = f }
}

// New builds a dispatcher and starts its workers.
func New(src RuntimeSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		src:      src,
		workers:  DefaultWorkers,
		logger:   logging.Nop{},
		recorder: nopRecorder{},
		tracer:   otel.Tracer("github.com/agbru/logmap/internal/dispatch"),
		evaluate: logmap.EvaluateParallel,
		queue:    newQueue[*job](),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.wg.Add(d.workers)
	for i := 0; i < d.workers; i++ {
		go d.work(i)
	}
	d.logger.Debug("dispatch pool started", logging.Int("workers", d.workers))
	return d
}

// Submit captures the request into an owned snapshot, queues it and returns
// its ID without waiting for any computation. Input that cannot be decoded is
// not reported here: it produces a failure reply like any other job failure.
func (d *Dispatcher) Submit(input any, iterations int64, p logmap.Params, replyTo ReplyTarget) (JobID, error) {
	if replyTo == nil {
		return JobID{}, apperrors.NewConfigError("dispatch: nil reply target")
	}
	j := capture(input, iterations, p, replyTo)
	j.queuedAt = time.Now()
	j.setState(StateQueued)
	if err := d.queue.push(j); err != nil {
		return JobID{}, ErrClosed
	}
	d.recorder.JobSubmitted()
	d.recorder.QueueDepth(d.queue.len())
	d.logger.Debug("job queued", logging.String("job_id", j.id.String()), logging.String("state", StateQueued.String()))
	return j.id, nil
}

// Workers returns the pool size.
func (d *Dispatcher) Workers() int { return d.workers }

// Pending returns the number of jobs waiting for a worker.
func (d *Dispatcher) Pending() int { return d.queue.len() }

// Busy returns the number of workers currently running a job.
func (d *Dispatcher) Busy() int { return int(d.busy.Load()) }

// Close stops accepting jobs and blocks until the workers have delivered
// every job already queued.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.queue.close()
		d.wg.Wait()
		d.logger.Debug("dispatch pool stopped")
	})
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for {
		j, err := d.queue.pop(context.Background())
		if err != nil {
			return
		}
		d.recorder.QueueDepth(d.queue.len())
		d.run(id, j)
	}
}

func (d *Dispatcher) run(worker int, j *job) {
	d.busy.Add(1)
	defer d.busy.Add(-1)

	start := time.Now()
	j.setState(StateRunning)
	d.recorder.JobStarted(start.Sub(j.queuedAt))
	d.logger.Debug("job running",
		logging.String("job_id", j.id.String()),
		logging.Int("worker", worker),
		logging.String("state", StateRunning.String()))

	_, span := d.tracer.Start(context.Background(), "logmap.async_batch",
		trace.WithAttributes(
			attribute.String("logmap.job_id", j.id.String()),
			attribute.Int64("logmap.iterations", j.iterations),
		))
	defer span.End()

	values, err := d.execute(j)
	elapsed := time.Since(start)
	reply := Reply{JobID: j.id}
	final := StateDelivered
	if err != nil {
		reply.Err = ErrBatchFailed
		if d.errorDetail {
			reply.Err = fmt.Errorf("%w: %w", ErrBatchFailed, err)
		}
		final = StateDeliveredError
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrBatchFailed.Error())
		d.logger.Error("job failed", err, logging.String("job_id", j.id.String()), logging.Duration("elapsed", elapsed))
	} else {
		reply.Values = values
		span.SetAttributes(attribute.Int("logmap.seeds", len(values)))
		d.logger.Debug("job delivered",
			logging.String("job_id", j.id.String()),
			logging.Int("values", len(values)),
			logging.Duration("elapsed", elapsed))
	}
	d.recorder.JobFinished(err == nil, elapsed, len(values))
	j.setState(final)
	d.deliver(j, reply)
}

// execute turns any failure, including a panic, into an error so that one bad
// job never takes the pool down.
func (d *Dispatcher) execute(j *job) (values []int64, err error) {
	defer func() {
		if p := recover(); p != nil {
			values, err = nil, apperrors.CalculationError{Cause: fmt.Errorf("panic: %v", p)}
		}
	}()
	if j.decodeErr != nil {
		return nil, j.decodeErr
	}
	seeds, err := logmap.Normalize(j.input)
	if err != nil {
		return nil, err
	}
	return d.evaluate(d.src.Runtime(), seeds, j.iterations, j.params)
}

func (d *Dispatcher) deliver(j *job, r Reply) {
	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("reply target panicked", fmt.Errorf("%v", p), logging.String("job_id", j.id.String()))
		}
	}()
	j.replyTo.Deliver(r)
}
