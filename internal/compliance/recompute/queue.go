// Package recompute runs compliance evaluations off the request path.
//
// Schedule never blocks and never fails the caller. Work is coalesced per
// society: scheduling a society that is already waiting is a no-op, so a
// burst of uploads costs one evaluation. When the buffer is full the request
// is dropped and counted; the next upload or review schedules it again.
package recompute

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"greentax/internal/compliance/metrics"
	"greentax/internal/compliance/models"
	"greentax/pkg/domain"
	"greentax/pkg/requestcontext"
)

const (
	DefaultWorkers = 4
	DefaultBuffer  = 256
	DefaultTimeout = 10 * time.Second
)

// Evaluator recomputes one society's compliance record.
type Evaluator interface {
	Evaluate(ctx context.Context, societyID domain.SocietyID) (*models.Record, error)
}

type task struct {
	ctx       context.Context
	societyID domain.SocietyID
}

// Queue is a bounded, coalescing worker pool for compliance recomputes.
type Queue struct {
	evaluator Evaluator
	tasks     chan task
	workers   int
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics

	mu      sync.Mutex
	pending map[domain.SocietyID]struct{}

	dropped   atomic.Int64
	failed    atomic.Int64
	completed atomic.Int64
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithBuffer(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.tasks = make(chan task, n)
		}
	}
}

// WithTimeout bounds each evaluation.
func WithTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(q *Queue) {
		q.metrics = m
	}
}

func NewQueue(evaluator Evaluator, opts ...Option) *Queue {
	q := &Queue{
		evaluator: evaluator,
		tasks:     make(chan task, DefaultBuffer),
		workers:   DefaultWorkers,
		timeout:   DefaultTimeout,
		logger:    slog.Default(),
		pending:   make(map[domain.SocietyID]struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Schedule requests a recompute for societyID. Only the request ID survives
// from ctx; the evaluation runs on its own clock and deadline.
func (q *Queue) Schedule(ctx context.Context, societyID domain.SocietyID) {
	q.mu.Lock()
	if _, waiting := q.pending[societyID]; waiting {
		q.mu.Unlock()
		return
	}
	q.pending[societyID] = struct{}{}
	q.mu.Unlock()

	select {
	case q.tasks <- task{ctx: requestcontext.Detach(ctx), societyID: societyID}:
	default:
		q.release(societyID)
		q.dropped.Add(1)
		q.metrics.IncrementRecomputeDropped()
		q.logger.WarnContext(ctx, "compliance recompute dropped, queue full",
			"request_id", requestcontext.RequestID(ctx),
			"society_id", societyID,
		)
	}
}

// Run starts the workers and blocks until ctx is cancelled. Tasks already
// buffered at cancellation are still evaluated before Run returns.
func (q *Queue) Run(ctx context.Context) error {
	g := new(errgroup.Group)
	for range q.workers {
		g.Go(func() error {
			q.work(ctx)
			return nil
		})
	}
	return g.Wait()
}

func (q *Queue) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case t := <-q.tasks:
					q.process(t)
				default:
					return
				}
			}
		case t := <-q.tasks:
			q.process(t)
		}
	}
}

func (q *Queue) process(t task) {
	q.release(t.societyID)

	ctx, cancel := context.WithTimeout(t.ctx, q.timeout)
	defer cancel()

	if _, err := q.evaluator.Evaluate(ctx, t.societyID); err != nil {
		q.failed.Add(1)
		q.metrics.IncrementRecomputeFailure()
		q.logger.ErrorContext(ctx, "compliance recompute failed",
			"request_id", requestcontext.RequestID(ctx),
			"society_id", t.societyID,
			"error", err,
		)
		return
	}
	q.completed.Add(1)
}

func (q *Queue) release(societyID domain.SocietyID) {
	q.mu.Lock()
	delete(q.pending, societyID)
	q.mu.Unlock()
}

// Dropped reports how many schedules were refused because the queue was full.
func (q *Queue) Dropped() int64 { return q.dropped.Load() }

// Failed reports how many evaluations returned an error.
func (q *Queue) Failed() int64 { return q.failed.Load() }

// Completed reports how many evaluations succeeded.
func (q *Queue) Completed() int64 { return q.completed.Load() }

// Inline evaluates synchronously on Schedule. Errors are logged, never
// returned. Used by tests and one-shot tools.
type Inline struct {
	evaluator Evaluator
	logger    *slog.Logger
}

func NewInline(evaluator Evaluator, logger *slog.Logger) *Inline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inline{evaluator: evaluator, logger: logger}
}

func (i *Inline) Schedule(ctx context.Context, societyID domain.SocietyID) {
	if _, err := i.evaluator.Evaluate(ctx, societyID); err != nil {
		i.logger.ErrorContext(ctx, "compliance recompute failed",
			"request_id", requestcontext.RequestID(ctx),
			"society_id", societyID,
			"error", err,
		)
	}
}
