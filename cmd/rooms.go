package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// roomsCmd lists the cached room availability.
var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List room types with their available count and rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := bootstrap(ctx, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		rooms, err := rt.inventory.Service().ListRooms(ctx)
		if err != nil {
			return fmt.Errorf("failed to list room types: %w", err)
		}
		for _, r := range rooms {
			rt.logger.Info("Room type",
				zap.String("code", r.Code),
				zap.String("name", r.Name),
				zap.Int("available_count", r.AvailableCount),
				zap.Int("capacity", r.Capacity),
				zap.Float64("rate", r.Rate),
			)
		}
		rt.logger.Info("Total room types", zap.Int("count", len(rooms)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(roomsCmd)
}
