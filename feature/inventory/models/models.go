package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoomType represents the 'room_types' table: the cached availability shown
// on the public site for one category of rooms.
type RoomType struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	Code           string    `gorm:"column:code;size:64;uniqueIndex;not null" json:"code"`
	Name           string    `gorm:"column:name;size:255" json:"name"`
	Rate           float64   `gorm:"column:rate;type:decimal(10,2);not null;default:0" json:"rate"`
	AvailableCount int       `gorm:"column:available_count;not null;default:0" json:"available_count"`
	Capacity       int       `gorm:"column:capacity;not null;default:0" json:"capacity"` // 0 = unbounded
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (RoomType) TableName() string {
	return "room_types"
}

// ProcessedEventLog represents the 'processed_event_logs' table. Rows are
// only ever inserted.
type ProcessedEventLog struct {
	ID           uint           `gorm:"column:id;primaryKey" json:"id"`
	CycleID      string         `gorm:"column:cycle_id;size:36;index" json:"cycle_id"`
	ReceiptToken string         `gorm:"column:receipt_token;size:512;index;not null" json:"receipt_token"`
	Kind         string         `gorm:"column:kind;size:32" json:"kind"`
	RoomTypeCode string         `gorm:"column:room_type_code;size:64" json:"room_type_code"`
	Payload      datatypes.JSON `gorm:"column:payload" json:"payload" swaggertype:"object"`
	Outcome      string         `gorm:"column:outcome;size:16;index" json:"outcome"`
	Detail       string         `gorm:"column:detail;type:text" json:"detail,omitempty"`
	ProcessedAt  time.Time      `gorm:"column:processed_at;index" json:"processed_at"`
}

// TableName overrides the table name.
func (ProcessedEventLog) TableName() string {
	return "processed_event_logs"
}

// RoomTypeColumns are the columns the store reads and writes.
var RoomTypeColumns = []string{"id", "code", "name", "rate", "available_count", "capacity", "created_at", "updated_at"}

// ProcessedEventLogColumns are the columns the event log writes.
var ProcessedEventLogColumns = []string{"id", "cycle_id", "receipt_token", "kind", "room_type_code", "payload", "outcome", "detail", "processed_at"}
