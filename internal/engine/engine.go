package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/logmap/internal/dispatch"
	"github.com/agbru/logmap/internal/logging"
	"github.com/agbru/logmap/internal/logmap"
	"github.com/agbru/logmap/internal/parallel"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	// Workers is the data-parallel runtime size fixed by Init.
	Workers int
	// PoolSize is the number of dispatch workers.
	PoolSize int
	// Grain is the minimum chunk size of a parallel loop.
	Grain int
	// ErrorDetail keeps the failure cause in asynchronous replies.
	ErrorDetail bool
	Logger      logging.Logger
	Recorder    dispatch.Recorder
}

// Engine exposes every batch operation. Synchronous operations run on the
// caller's goroutine; MapCalcAsync hands the batch to the dispatch pool.
type Engine struct {
	workers    int
	bootstrap  *parallel.Bootstrap
	dispatcher *dispatch.Dispatcher
	logger     logging.Logger
	tracer     trace.Tracer
}

// New builds an engine and starts its dispatch pool. The data-parallel
// runtime is not created until Init or the first asynchronous job.
func New(opts Options) *Engine {
	if opts.Workers < 1 {
		opts.Workers = parallel.DefaultWorkers
	}
	if opts.PoolSize < 1 {
		opts.PoolSize = dispatch.DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop{}
	}

	var rtOpts []parallel.Option
	if opts.Grain > 0 {
		rtOpts = append(rtOpts, parallel.WithGrain(opts.Grain))
	}
	b := parallel.NewBootstrap(opts.Workers, rtOpts...)

	dopts := []dispatch.Option{
		dispatch.WithWorkers(opts.PoolSize),
		dispatch.WithErrorDetail(opts.ErrorDetail),
		dispatch.WithLogger(opts.Logger),
	}
	if opts.Recorder != nil {
		dopts = append(dopts, dispatch.WithRecorder(opts.Recorder))
	}

	return &Engine{
		workers:    opts.Workers,
		bootstrap:  b,
		dispatcher: dispatch.New(b, dopts...),
		logger:     opts.Logger,
		tracer:     otel.Tracer("github.com/agbru/logmap/internal/engine"),
	}
}

// Init fixes the data-parallel runtime at the configured worker count. It
// succeeds once per Engine; later calls, or a call after an asynchronous job
// has already forced the runtime into existence, return
// parallel.ErrAlreadyConfigured.
func (e *Engine) Init() error {
	rt, err := e.bootstrap.Init(e.workers)
	if err != nil {
		return err
	}
	e.logger.Info("parallel runtime configured", logging.Int("workers", rt.Workers()), logging.Int("grain", rt.Grain()))
	return nil
}

// Calc evaluates one seed.
func (e *Engine) Calc(seed, iterations, p, mu int64) int64 {
	return logmap.Evaluate(seed, iterations, p, mu)
}

// MapCalcList decodes input and evaluates it sequentially.
func (e *Engine) MapCalcList(input any, iterations, p, mu int64) ([]int64, error) {
	_, span := e.tracer.Start(context.Background(), "logmap.batch",
		trace.WithAttributes(attribute.Int64("logmap.iterations", iterations)))
	defer span.End()

	seeds, err := normalize(input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}
	span.SetAttributes(attribute.Int("logmap.seeds", len(seeds)))
	return logmap.EvaluateSequential(seeds, iterations, logmap.Params{Modulus: p, Multiplier: mu}), nil
}

// ToBinary decodes input and projects each seed onto its low byte.
func (e *Engine) ToBinary(input any) ([]byte, error) {
	seeds, err := normalize(input)
	if err != nil {
		return nil, err
	}
	return logmap.ProjectBytes(seeds), nil
}

// MapCalcBinary evaluates every byte of buf, zero-extended, as a seed.
func (e *Engine) MapCalcBinary(buf []byte, iterations, p, mu int64) []int64 {
	seeds, _ := logmap.Normalize(logmap.RawBytes(buf))
	return logmap.EvaluateSequential(seeds, iterations, logmap.Params{Modulus: p, Multiplier: mu})
}

// CallEmpty returns the canonical sequence of input without evaluating it.
// p and mu are accepted for call-shape compatibility and ignored.
func (e *Engine) CallEmpty(input any, _, _ int64) ([]int64, error) {
	return normalize(input)
}

// MapCalcAsync queues input for evaluation on the dispatch pool and returns
// at once. The result, or a failure matching dispatch.ErrBatchFailed, is
// delivered to reply later; input errors are reported that way too.
func (e *Engine) MapCalcAsync(input any, iterations, p, mu int64, reply dispatch.ReplyTarget) (dispatch.JobID, error) {
	return e.dispatcher.Submit(input, iterations, logmap.Params{Modulus: p, Multiplier: mu}, reply)
}

// Status is a snapshot of the engine's pools.
type Status struct {
	Configured     bool
	RuntimeWorkers int
	PoolSize       int
	Pending        int
	Busy           int
	Runtime        parallel.Stats
}

// Status reports the current pool state without forcing the runtime into
// existence.
func (e *Engine) Status() Status {
	s := Status{
		Configured: e.bootstrap.Configured(),
		PoolSize:   e.dispatcher.Workers(),
		Pending:    e.dispatcher.Pending(),
		Busy:       e.dispatcher.Busy(),
	}
	if s.Configured {
		rt := e.bootstrap.Runtime()
		s.RuntimeWorkers = rt.Workers()
		s.Runtime = rt.Stats()
	}
	return s
}

// Close drains the dispatch pool. Pending jobs are still delivered.
func (e *Engine) Close() {
	e.dispatcher.Close()
}

func normalize(input any) ([]int64, error) {
	in, err := logmap.Decode(input)
	if err != nil {
		return nil, err
	}
	return logmap.Normalize(in)
}
