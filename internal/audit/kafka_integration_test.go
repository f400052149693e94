//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"greentax/internal/audit"
	"greentax/pkg/domain"
	"greentax/pkg/testutil/containers"
)

type KafkaSinkSuite struct {
	suite.Suite
	broker string
}

func TestKafkaSinkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaSinkSuite))
}

func (s *KafkaSinkSuite) SetupSuite() {
	s.broker = containers.GetManager().GetRedpanda(s.T()).Broker
}

func (s *KafkaSinkSuite) TestProducedEventIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic := "greentax.audit.test"
	sink, err := audit.NewKafkaSink([]string{s.broker}, topic, nil)
	s.Require().NoError(err)
	s.Require().NoError(sink.EnsureTopic(ctx, 1, 1))
	s.Require().NoError(sink.EnsureTopic(ctx, 1, 1), "ensuring an existing topic is a no-op")

	societyID := domain.NewSocietyID()
	s.Require().NoError(sink.Append(ctx, audit.Event{
		Type:      audit.EventComplianceEvaluated,
		Timestamp: time.Now().UTC(),
		SocietyID: societyID,
		Status:    "GREEN",
	}))
	s.Require().NoError(sink.Close(ctx))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())

	var got audit.Event
	found := false
	fetches.EachRecord(func(r *kgo.Record) {
		if string(r.Key) == societyID.String() {
			s.Require().NoError(json.Unmarshal(r.Value, &got))
			found = true
		}
	})
	s.Require().True(found)
	s.Equal(audit.EventComplianceEvaluated, got.Type)
	s.Equal("GREEN", got.Status)
}
