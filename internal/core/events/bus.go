package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) Payload() interface{}  { return e.Data }

type Handler func(ctx context.Context, event Event) error

// EventBus is an in-process pub/sub fabric. Payment lifecycle events flow
// through it so audit logging stays out of the reconciliation path.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	count := len(eb.handlers[eventType])
	eb.mu.Unlock()

	eb.logger.Info("event handler registered",
		"event_type", eventType, "total_handlers", count)
}

// snapshot copies the handler slice so a publish never races Subscribe.
func (eb *EventBus) snapshot(eventType string) []Handler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return append([]Handler(nil), eb.handlers[eventType]...)
}

// Publish fans the event out asynchronously. Handler errors are logged and
// swallowed; a failed subscriber must never fail the payment that emitted it.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	handlers := eb.snapshot(event.EventType())
	if len(handlers) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil
	}

	for _, handler := range handlers {
		go func(h Handler) {
			if err := h(ctx, event); err != nil {
				eb.logger.Error("event handler failed",
					"event_type", event.EventType(),
					"event_id", event.EventID(),
					"error", err)
			}
		}(handler)
	}
	return nil
}

// PublishSync runs handlers inline and stops on the first failure.
func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	handlers := eb.snapshot(event.EventType())
	if len(handlers) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil
	}

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			eb.logger.Error("event handler failed",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"error", err)
			return fmt.Errorf("handler failed for event %s: %w", event.EventType(), err)
		}
	}
	return nil
}
