package service

import (
	"context"
	"fmt"

	"promptly-be/internal/metrics"
	"promptly-be/internal/pkg/logger"
	"promptly-be/internal/repository/specification"
	"promptly-be/internal/repository/unitofwork"
	"promptly-be/pkg/events"
	pktNats "promptly-be/pkg/nats"

	"github.com/google/uuid"
)

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

type IEventConsumer interface {
	Start(ctx context.Context) error
}

type eventConsumer struct {
	subscriber EventSubscriber
	uowFactory unitofwork.RepositoryFactory
	metrics    *metrics.Metrics
	logger     logger.ILogger
}

func NewEventConsumer(subscriber EventSubscriber, uowFactory unitofwork.RepositoryFactory, m *metrics.Metrics, log logger.ILogger) IEventConsumer {
	return &eventConsumer{
		subscriber: subscriber,
		uowFactory: uowFactory,
		metrics:    m,
		logger:     log,
	}
}

func (c *eventConsumer) Start(ctx context.Context) error {
	handlers := map[string]pktNats.EventHandler{
		events.PromptUsed:       c.handlePromptUsed,
		events.ProfileCompleted: c.handleProfileCompleted,
		events.AccountCreated:   c.handleLogged,
		events.PromptSaved:      c.handleLogged,
	}
	for eventType, handler := range handlers {
		durable := "promptly-api-" + eventType
		if err := c.subscriber.Subscribe(ctx, eventType, durable, c.observe(eventType, handler)); err != nil {
			return fmt.Errorf("subscribe %s: %w", eventType, err)
		}
	}
	return nil
}

func (c *eventConsumer) observe(eventType string, handler pktNats.EventHandler) pktNats.EventHandler {
	return func(ctx context.Context, evt events.Event) error {
		err := handler(ctx, evt)
		c.metrics.ObserveEvent(eventType, "consumed", err)
		return err
	}
}

func (c *eventConsumer) handlePromptUsed(ctx context.Context, evt events.Event) error {
	promptId, err := uuid.Parse(fmt.Sprint(evt.Payload()["prompt_id"]))
	if err != nil {
		c.logger.Warn("EVENTS", "Dropping PROMPT_USED without prompt id", map[string]interface{}{"payload": evt.Payload()})
		return nil
	}

	uses, err := c.uowFactory.NewUnitOfWork(ctx).PromptUsageRepository().Count(ctx, specification.ByPromptID{PromptID: promptId})
	if err != nil {
		return fmt.Errorf("count usage: %w", err)
	}

	c.logger.Info("EVENTS", "Prompt used", map[string]interface{}{
		"prompt_id":   promptId.String(),
		"total_uses":  uses,
		"occurred_at": evt.Timestamp(),
	})
	return nil
}

func (c *eventConsumer) handleProfileCompleted(ctx context.Context, evt events.Event) error {
	completed, err := c.uowFactory.NewUnitOfWork(ctx).UserRepository().Count(ctx, specification.CompletedProfiles{})
	if err != nil {
		return fmt.Errorf("count completed profiles: %w", err)
	}

	c.logger.Info("EVENTS", "Profile completed", map[string]interface{}{
		"user_id":            evt.Payload()["user_id"],
		"completed_profiles": completed,
	})
	return nil
}

func (c *eventConsumer) handleLogged(ctx context.Context, evt events.Event) error {
	c.logger.Info("EVENTS", "Event received", map[string]interface{}{
		"event":   evt.EventType(),
		"payload": evt.Payload(),
	})
	return nil
}

// ObservedPublisher counts every publish attempt before handing the event to
// the wrapped transport.
type ObservedPublisher struct {
	Next    events.Publisher
	Metrics *metrics.Metrics
}

func (p ObservedPublisher) Publish(ctx context.Context, evt events.Event) error {
	err := p.Next.Publish(ctx, evt)
	p.Metrics.ObserveEvent(evt.EventType(), "published", err)
	return err
}
