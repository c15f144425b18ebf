package service

import (
	"context"
	"errors"
	"testing"

	"promptly-be/internal/metrics"
	"promptly-be/pkg/events"
	pktNats "promptly-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	handlers map[string]pktNats.EventHandler
	durables []string
}

func (s *fakeSubscriber) Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error {
	if s.handlers == nil {
		s.handlers = map[string]pktNats.EventHandler{}
	}
	s.handlers[eventType] = handler
	s.durables = append(s.durables, durableName)
	return nil
}

func TestEventConsumer_SubscribesAndHandles(t *testing.T) {
	db := newFakeDB()
	seedUser(t, db, "acct-1")
	sub := &fakeSubscriber{}
	consumer := NewEventConsumer(sub, db, nil, testLogger)
	ctx := context.Background()

	require.NoError(t, consumer.Start(ctx))
	assert.Len(t, sub.handlers, 4)
	assert.Contains(t, sub.durables, "promptly-api-PROMPT_USED")

	assert.NoError(t, sub.handlers[events.PromptUsed](ctx, events.New(events.PromptUsed, map[string]interface{}{
		"prompt_id": uuid.NewString(),
	})))
	// A payload without a prompt id is dropped, not retried.
	assert.NoError(t, sub.handlers[events.PromptUsed](ctx, events.New(events.PromptUsed, nil)))
	assert.NoError(t, sub.handlers[events.ProfileCompleted](ctx, events.New(events.ProfileCompleted, nil)))
}

func TestObservedPublisher(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	inner := &recordingPublisher{}
	pub := ObservedPublisher{Next: inner, Metrics: m}

	require.NoError(t, pub.Publish(context.Background(), events.New(events.PromptUsed, nil)))
	inner.err = errors.New("nats down")
	assert.Error(t, pub.Publish(context.Background(), events.New(events.PromptUsed, nil)))

	assert.Len(t, inner.types(), 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventCounter(events.PromptUsed, "published", "error")))
}
