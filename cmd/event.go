package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/timeclock/internal/core/events"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect the portal's domain events and push test events through the audit log`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the event bus with the audit log subscribed, for debugging`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var listEventCmd = &cobra.Command{
	Use:   "list",
	Short: "List audited event types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, eventType := range events.AuditedEventTypes {
			fmt.Println(eventType)
		}
	},
}

var (
	eventUserID string
	eventActor  string
	eventStatus string
)

func testEvent(eventType string) (events.Event, error) {
	switch eventType {
	case events.EventTypeAdjustmentReviewed:
		return events.NewAdjustmentReviewedEvent("cli-request", eventUserID, eventActor, eventStatus, "published from cli"), nil
	case events.EventTypeTimeOffReviewed:
		return events.NewTimeOffReviewedEvent("cli-request", eventUserID, eventActor, eventStatus, "published from cli"), nil
	case events.EventTypeLeaveAccrued:
		return events.NewLeaveAccruedEvent(eventUserID, "VACATION", 0, 0), nil
	case events.EventTypeUserDeactivated:
		return events.NewUserDeactivatedEvent(eventUserID, eventActor), nil
	}
	return nil, fmt.Errorf("unknown event type %q, expected one of %s", eventType, strings.Join(events.AuditedEventTypes, ", "))
}

func publishTestEvent(eventType string) {
	lg := logger.LoggerWrapper()

	event, err := testEvent(eventType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bus := newEventBus(lg)
	lg.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())

	if err := bus.PublishSync(context.Background(), event); err != nil {
		lg.Error("failed to publish event", "error", err)
		os.Exit(1)
	}
	lg.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventUserID, "user-id", "cli-user", "User the event is about")
	publishEventCmd.Flags().StringVar(&eventActor, "actor-id", "cli-actor", "User who caused the event")
	publishEventCmd.Flags().StringVar(&eventStatus, "status", "APPROVED", "Review status for review events")

	eventCmd.AddCommand(publishEventCmd)
	eventCmd.AddCommand(listEventCmd)

	rootCmd.AddCommand(eventCmd)
}
