package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

// ErrBufferFull is returned by ChannelSink when the worker is not keeping up.
var ErrBufferFull = errors.New("audit buffer full")

// ChannelSink hands events to a Worker without blocking the caller.
type ChannelSink struct {
	inbox   chan<- Event
	dropped atomic.Int64
}

func NewChannelSink(inbox chan<- Event) *ChannelSink {
	return &ChannelSink{inbox: inbox}
}

func (s *ChannelSink) Append(_ context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		s.dropped.Add(1)
		return ErrBufferFull
	}
}

// Dropped reports how many events were refused because the buffer was full.
func (s *ChannelSink) Dropped() int64 {
	return s.dropped.Load()
}

// Worker consumes audit events from a channel and forwards them to a sink,
// keeping slow sinks off the request path.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run forwards events until ctx is cancelled or the inbox is closed. Sink
// errors are logged and the event is dropped.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return nil
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.forward(ctx, event)
		}
	}
}

// drain flushes whatever is already buffered after shutdown was requested.
func (w *Worker) drain() {
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return
			}
			w.forward(context.Background(), event)
		default:
			return
		}
	}
}

func (w *Worker) forward(ctx context.Context, event Event) {
	if err := w.sink.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "audit sink append failed",
			"event", event.Type,
			"society_id", event.SocietyID,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}
