package cmd

import (
	"context"
	"fmt"

	"hotel-inventory/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var eventFilter inventory.EventFilter

// eventsCmd prints the processed event log.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the processed event log",
	Long: `Shows the newest processed event log entries.

Examples:
  # Everything that failed to apply
  events --outcome apply_failed

  # History of one delivery
  events --token AQEB...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := bootstrap(ctx, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		entries, err := rt.inventory.Service().ListEvents(ctx, eventFilter)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		for _, e := range entries {
			rt.logger.Info("Processed event",
				zap.Time("processed_at", e.ProcessedAt),
				zap.String("cycle_id", e.CycleID),
				zap.String("receipt_token", e.ReceiptToken),
				zap.String("kind", e.Kind),
				zap.String("room_type_code", e.RoomTypeCode),
				zap.String("outcome", e.Outcome),
				zap.String("detail", e.Detail),
			)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventFilter.ReceiptToken, "token", "", "Filter by receipt token")
	eventsCmd.Flags().StringVar(&eventFilter.Outcome, "outcome", "", "Filter by outcome")
	eventsCmd.Flags().StringVar(&eventFilter.CycleID, "cycle", "", "Filter by cycle id")
	eventsCmd.Flags().IntVar(&eventFilter.Limit, "limit", 50, "Maximum entries")
	RootCmd.AddCommand(eventsCmd)
}
