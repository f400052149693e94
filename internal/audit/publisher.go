package audit

import (
	"context"
	"log/slog"

	"greentax/pkg/requestcontext"
)

// Sink persists or forwards audit events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and delegates
// to a Sink so tests can swap destinations easily.
type Publisher struct {
	sink   Sink
	logger *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(sink Sink, opts ...PublisherOption) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit stamps the event with the request time and request ID and hands it to
// the sink. Sink failures are logged and returned; callers treat them as
// non-fatal.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if err := p.sink.Append(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish audit event",
			"event", event.Type,
			"society_id", event.SocietyID,
			"request_id", event.RequestID,
			"error", err,
		)
		return err
	}
	return nil
}
