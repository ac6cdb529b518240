package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"hotel-inventory/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunPoll bool

// pollCmd runs a single poll cycle.
var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run one poll cycle and exit",
	Long: `Polls the upstream stream once, applies the batch to the inventory store,
acknowledges it and records every event in the processed event log.

Examples:
  # One cycle
  poll

  # Classify the pending batch without applying or acknowledging it
  poll --dry-run`,
	RunE: runPoll,
}

func init() {
	pollCmd.Flags().BoolVar(&dryRunPoll, "dry-run", false, "Classify only (nothing applied or acknowledged)")
	RootCmd.AddCommand(pollCmd)
}

func runPoll(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	l := rt.logger

	if dryRunPoll {
		plan, err := rt.driver.Preview(ctx)
		if err != nil {
			return fmt.Errorf("failed to preview batch: %w", err)
		}
		printPlan(l, plan)
		l.Info("Dry-run mode: nothing was applied or acknowledged.")
		return nil
	}

	summary, err := rt.driver.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("poll cycle failed: %w", err)
	}
	printSummary(l, summary)
	return nil
}

// printPlan logs the classification of a previewed batch.
func printPlan(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary
	l.Info("Batch preview",
		zap.Int("total", s.Total),
		zap.Int("absolute_updates", s.AbsoluteUpdates),
		zap.Int("reservation_deltas", s.ReservationDeltas),
		zap.Int("unrecognized", s.Unrecognized),
		zap.Int("invalid", s.Invalid),
	)
	for _, a := range plan.Actions {
		fields := []zap.Field{zap.String("receipt_token", a.Event.ReceiptToken)}
		if a.Err != nil {
			l.Warn("Invalid event", append(fields, zap.Error(a.Err))...)
			continue
		}
		fields = append(fields,
			zap.String("kind", string(a.Classification.Kind())),
			zap.String("room_type_code", a.Classification.RoomTypeCode()),
			zap.Any("classification", a.Classification),
		)
		l.Info("Planned event", fields...)
	}
}

// printSummary logs the outcome of a cycle.
func printSummary(l *zap.Logger, s *reconcile.Summary) {
	switch {
	case s.Busy:
		l.Info("Another instance is running a cycle; nothing done.")
		return
	case s.NoWork:
		l.Info("No pending events.")
		return
	}

	l.Info("Cycle report",
		zap.String("cycle_id", s.CycleID),
		zap.Int("polled", s.Polled),
		zap.Int("applied", s.Counts.Applied),
		zap.Int("skipped", s.Counts.Skipped),
		zap.Int("duplicate", s.Counts.Duplicate),
		zap.Int("apply_failed", s.Counts.ApplyFailed),
		zap.Int("ack_failed", s.Counts.AckFailed),
		zap.String("archive_key", s.ArchiveKey),
	)
}
