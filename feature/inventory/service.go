package inventory

import (
	"context"

	"hotel-inventory/core/reconcile"
	"hotel-inventory/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles room and event log operations for the HTTP API.
type Service struct {
	store  *Store
	events *EventLog
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new inventory service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		store:  NewStore(db),
		events: NewEventLog(db),
		logger: logger,
		db:     db,
	}
}

// Store returns the inventory store the reconciler writes to.
func (s *Service) Store() *Store {
	return s.store
}

// EventLog returns the processed event log.
func (s *Service) EventLog() *EventLog {
	return s.events
}

// ListRooms returns every room type.
func (s *Service) ListRooms(ctx context.Context) ([]models.RoomType, error) {
	return s.store.List(ctx)
}

// GetRoom returns one room type.
func (s *Service) GetRoom(ctx context.Context, code string) (reconcile.Room, error) {
	return s.store.Get(ctx, code)
}

// UpdateRoom applies an administrative override.
func (s *Service) UpdateRoom(ctx context.Context, code string, update RoomUpdate) (*models.RoomType, error) {
	room, err := s.store.Upsert(ctx, code, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Room type updated by operator",
		zap.String("code", room.Code),
		zap.Int("available_count", room.AvailableCount),
		zap.Float64("rate", room.Rate))
	return room, nil
}

// ListEvents returns processed event log entries.
func (s *Service) ListEvents(ctx context.Context, f EventFilter) ([]models.ProcessedEventLog, error) {
	return s.events.List(ctx, f)
}

// HealthReport describes database reachability and schema completeness.
type HealthReport struct {
	Status         string              `json:"status"`
	Database       string              `json:"database"`
	MissingColumns map[string][]string `json:"missing_columns,omitempty"`
}

// Health pings the database and checks the inventory schema.
func (s *Service) Health(ctx context.Context) HealthReport {
	report := HealthReport{Status: "ok", Database: "ok"}

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		report.Status = "degraded"
		report.Database = err.Error()
		return report
	}

	missing, err := s.store.CheckSchema(ctx)
	if err != nil {
		report.Status = "degraded"
		report.Database = err.Error()
		return report
	}
	if len(missing) > 0 {
		report.Status = "degraded"
		report.MissingColumns = missing
	}
	return report
}
