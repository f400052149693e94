package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink produces audit events to a topic, keyed by society so a
// society's trail stays ordered within one partition.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaSink connects a producer to brokers.
func NewKafkaSink(brokers []string, topic string, logger *slog.Logger) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka audit sink requires at least one broker")
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic, logger: logger}, nil
}

// EnsureTopic creates the audit topic if it does not exist yet.
func (k *KafkaSink) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(k.client)
	resp, err := adm.CreateTopics(ctx, partitions, replication, nil, k.topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create audit topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Append produces the event asynchronously. Delivery failures are logged by
// the produce callback.
func (k *KafkaSink) Append(ctx context.Context, event Event) error {
	record, err := encodeRecord(event)
	if err != nil {
		return err
	}
	k.client.Produce(ctx, record, func(r *kgo.Record, err error) {
		if err != nil {
			k.logger.Error("audit event delivery failed",
				"topic", r.Topic,
				"event", event.Type,
				"society_id", event.SocietyID,
				"request_id", event.RequestID,
				"error", err,
			)
		}
	})
	return nil
}

// Close flushes buffered records and closes the client.
func (k *KafkaSink) Close(ctx context.Context) error {
	err := k.client.Flush(ctx)
	k.client.Close()
	return err
}

func encodeRecord(event Event) (*kgo.Record, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode audit event: %w", err)
	}
	return &kgo.Record{
		Key:   []byte(event.SocietyID.String()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}
