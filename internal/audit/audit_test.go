package audit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greentax/pkg/domain"
	"greentax/pkg/requestcontext"
)

type failingSink struct{}

func (failingSink) Append(context.Context, Event) error { return errors.New("sink down") }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherEmitStampsRequestMetadata(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithPublisherLogger(discardLogger()))

	now := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-7")
	societyID := domain.NewSocietyID()

	require.NoError(t, pub.Emit(ctx, Event{Type: EventSocietyRegistered, SocietyID: societyID}))

	events, err := store.ListBySociety(ctx, societyID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "req-7", events[0].RequestID)
}

func TestPublisherReturnsSinkError(t *testing.T) {
	pub := NewPublisher(failingSink{}, WithPublisherLogger(discardLogger()))
	err := pub.Emit(context.Background(), Event{Type: EventProofSubmitted})
	assert.Error(t, err)
}

func TestInMemoryStoreListBySociety(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	a, b := domain.NewSocietyID(), domain.NewSocietyID()

	require.NoError(t, store.Append(ctx, Event{Type: EventProofSubmitted, SocietyID: a}))
	require.NoError(t, store.Append(ctx, Event{Type: EventProofSubmitted, SocietyID: b}))
	require.NoError(t, store.Append(ctx, Event{Type: EventComplianceEvaluated, SocietyID: a}))

	events, err := store.ListBySociety(ctx, a)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventComplianceEvaluated, events[1].Type)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestWorkerForwardsAndDrains(t *testing.T) {
	inbox := make(chan Event, 4)
	channel := NewChannelSink(inbox)
	store := NewInMemoryStore()
	worker := NewWorker(store, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = worker.Run(ctx)
		close(done)
	}()

	for range 3 {
		require.NoError(t, channel.Append(ctx, Event{Type: EventProofSubmitted}))
	}
	cancel()
	<-done

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestChannelSinkRefusesWhenFull(t *testing.T) {
	inbox := make(chan Event, 1)
	channel := NewChannelSink(inbox)

	require.NoError(t, channel.Append(context.Background(), Event{}))
	assert.ErrorIs(t, channel.Append(context.Background(), Event{}), ErrBufferFull)
	assert.Equal(t, int64(1), channel.Dropped())
}

func TestWorkerKeepsRunningAfterSinkError(t *testing.T) {
	inbox := make(chan Event, 2)
	inbox <- Event{Type: EventProofSubmitted}
	close(inbox)

	worker := NewWorker(failingSink{}, inbox, discardLogger())
	assert.NoError(t, worker.Run(context.Background()))
}

func TestEncodeRecord(t *testing.T) {
	societyID := domain.NewSocietyID()
	proofID := domain.ProofID(uuid.New())
	event := Event{
		Type:      EventProofReviewed,
		Timestamp: time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC),
		SocietyID: societyID,
		ProofID:   &proofID,
		Status:    "VERIFIED",
	}

	record, err := encodeRecord(event)
	require.NoError(t, err)
	assert.Equal(t, societyID.String(), string(record.Key))
	require.Len(t, record.Headers, 1)
	assert.Equal(t, "proof_reviewed", string(record.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(record.Value, &decoded))
	assert.Equal(t, "proof_reviewed", decoded["type"])
	assert.Equal(t, proofID.String(), decoded["proof_id"])
	assert.NotContains(t, decoded, "actor_id")
}
