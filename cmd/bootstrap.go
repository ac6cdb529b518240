package cmd

import (
	"context"
	"fmt"
	"time"

	"hotel-inventory/core/config"
	"hotel-inventory/core/database"
	"hotel-inventory/core/lock"
	"hotel-inventory/core/logger"
	"hotel-inventory/core/reconcile"
	"hotel-inventory/core/storage"
	"hotel-inventory/core/upstream"
	"hotel-inventory/feature/inventory"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the wiring shared by every command.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	inventory *inventory.Feature
	driver    *reconcile.Driver
	redis     *redis.Client
}

// bootstrap loads configuration, connects the database and, when withDriver
// is set, builds the poll cycle driver with its optional lock and archive.
func bootstrap(ctx context.Context, withDriver bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: l, db: db, inventory: inventory.NewFeature(db, l)}
	store := rt.inventory.Service().Store()

	if cfg.Database.AutoMigrate {
		if err := store.Prepare(ctx); err != nil {
			return nil, err
		}
	} else if missing, err := store.CheckSchema(ctx); err != nil {
		l.Warn("Schema check failed", zap.Error(err))
	} else if len(missing) > 0 {
		l.Warn("Inventory schema is incomplete", zap.Any("missing_columns", missing))
	}

	if !withDriver {
		return rt, nil
	}

	client, err := upstream.NewClient(cfg.Upstream, nil, l)
	if err != nil {
		return nil, err
	}

	reconciler := reconcile.NewReconciler(store, rt.inventory.Service().EventLog(), client, l, cfg.Reconcile)
	rt.driver = reconcile.NewDriver(client, reconciler, cfg.Reconcile, l)

	if cfg.Lock.Enabled {
		rt.redis = lock.NewRedisClient(cfg.Lock)
		if err := rt.redis.Ping(ctx).Err(); err != nil {
			l.Warn("Redis unreachable, cycles will run without the lease until it recovers", zap.Error(err))
		}
		bound := lock.CycleBound(
			time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second,
			cfg.Reconcile.BatchSize,
			cfg.Reconcile.AckConcurrency,
		)
		rt.driver.WithLocker(lock.NewRedisLocker(rt.redis, cfg.Lock).AtLeast(bound))
	}

	archiver, err := storage.OpenArchiver(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch archive: %w", err)
	}
	if archiver != nil {
		if err := archiver.EnsureBucket(ctx); err != nil {
			l.Warn("Archive bucket not ready, will retry on first batch", zap.Error(err))
		}
		rt.driver.WithArchiver(archiver)
	}

	return rt, nil
}

// Close releases connections held by the runtime.
func (rt *runtime) Close() {
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
	if sqlDB, err := rt.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rt.logger.Sync()
}
