package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"hotel-inventory/core/loader"
	"hotel-inventory/core/logger"
	"hotel-inventory/core/middleware/auth"
	"hotel-inventory/core/middleware/rayid"
	"hotel-inventory/feature/poller"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "hotel-inventory/docs/swagger"
)

// @title Hotel Inventory API
// @version 1.0
// @description Operator API for the hotel inventory poller and reconciler.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server and the poll scheduler",
	Long: `Starts the operator HTTP API and, unless reconcile.schedule is false,
runs a poll cycle at start-up and then every reconcile.interval_seconds.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx, true)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer rt.Close()
		zap.ReplaceGlobals(rt.logger)
		logg := rt.logger

		scheduler := poller.NewScheduler(rt.driver, time.Duration(rt.cfg.Reconcile.IntervalSeconds)*time.Second, logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(rt.inventory)
		mgr.Register(poller.NewFeature(scheduler, logg))

		// RayID first so every later log line can carry it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		if rt.cfg.Server.Swagger {
			app.Get("/swagger/*", swagger.HandlerDefault)
		}

		app.Use(auth.New(auth.Config{
			ApiKey: rt.cfg.Server.ApiKey,
			Skip:   func(c *fiber.Ctx) bool { return c.Path() == "/health" },
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		if rt.cfg.Reconcile.Schedule {
			go scheduler.Run(ctx)
		} else {
			logg.Info("Scheduled polling disabled, use POST /poll or the poll command")
		}

		go func() {
			logg.Info("Starting server", zap.String("address", rt.cfg.Server.Address()))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(30 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
