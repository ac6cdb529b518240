package inventory

import (
	"context"
	"fmt"

	"hotel-inventory/core/reconcile"
	"hotel-inventory/feature/inventory/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventLog is the gorm-backed processed event log.
type EventLog struct {
	db *gorm.DB
}

// NewEventLog creates an event log on db.
func NewEventLog(db *gorm.DB) *EventLog {
	return &EventLog{db: db}
}

// EventFilter narrows an event log listing. Zero values match everything.
type EventFilter struct {
	ReceiptToken string
	Outcome      string
	CycleID      string
	Limit        int
}

// Append inserts one entry.
func (l *EventLog) Append(ctx context.Context, entry reconcile.LogEntry) error {
	row := models.ProcessedEventLog{
		CycleID:      entry.CycleID,
		ReceiptToken: entry.ReceiptToken,
		Kind:         string(entry.Kind),
		RoomTypeCode: entry.RoomTypeCode,
		Payload:      datatypes.JSON(entry.Payload),
		Outcome:      string(entry.Outcome),
		Detail:       entry.Detail,
		ProcessedAt:  entry.ProcessedAt,
	}
	if len(row.Payload) == 0 {
		row.Payload = datatypes.JSON(`{}`)
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append event log %s: %w", entry.ReceiptToken, err)
	}
	return nil
}

// Seen reports whether token has an entry whose mutation was not a failed apply.
func (l *EventLog) Seen(ctx context.Context, token string) (bool, error) {
	var n int64
	err := l.db.WithContext(ctx).Model(&models.ProcessedEventLog{}).
		Where("receipt_token = ? AND outcome <> ?", token, string(reconcile.OutcomeApplyFailed)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("lookup event log %s: %w", token, err)
	}
	return n > 0, nil
}

// List returns the newest entries matching f.
func (l *EventLog) List(ctx context.Context, f EventFilter) ([]models.ProcessedEventLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}

	q := l.db.WithContext(ctx).Model(&models.ProcessedEventLog{})
	if f.ReceiptToken != "" {
		q = q.Where("receipt_token = ?", f.ReceiptToken)
	}
	if f.Outcome != "" {
		q = q.Where("outcome = ?", f.Outcome)
	}
	if f.CycleID != "" {
		q = q.Where("cycle_id = ?", f.CycleID)
	}

	var rows []models.ProcessedEventLog
	if err := q.Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list event log: %w", err)
	}
	return rows, nil
}
