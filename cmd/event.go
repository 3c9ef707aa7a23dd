package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alphagrips/academy-backend/internal/core/events"
	"github.com/alphagrips/academy-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events, monitor event bus, inspect handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the event bus for testing and debugging`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventData string

// registerEventSubscribers attaches the audit-trail subscribers the server
// runs with: every payment lifecycle event lands in the structured log.
func registerEventSubscribers(bus *events.EventBus, log *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		log.Info("audit: payment event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypePaymentRecorded, audit)
	bus.Subscribe(events.EventTypePaymentConfirmed, audit)
	bus.Subscribe(events.EventTypePaymentExpired, audit)
}

func publishTestEvent(eventType string) {
	log := logger.L()

	eventBus := events.NewEventBus(log)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		log.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.BaseEvent{
		ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "cli-command",
		},
	}

	log.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)

	ctx := context.Background()
	if err := eventBus.Publish(ctx, testEvent); err != nil {
		log.Error("failed to publish event", "error", err)
		return
	}

	time.Sleep(100 * time.Millisecond)
	log.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
