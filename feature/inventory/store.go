package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-inventory/core/database"
	"hotel-inventory/core/reconcile"
	"hotel-inventory/feature/inventory/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidRoom is returned for an administrative update with bad values.
var ErrInvalidRoom = errors.New("invalid room type")

// Store is the gorm-backed inventory store.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RoomUpdate is an administrative change. Nil fields are left unchanged.
type RoomUpdate struct {
	Name           *string  `json:"name,omitempty"`
	Rate           *float64 `json:"rate,omitempty"`
	AvailableCount *int     `json:"available_count,omitempty"`
	Capacity       *int     `json:"capacity,omitempty"`
}

func (u RoomUpdate) validate() error {
	switch {
	case u.Rate != nil && *u.Rate < 0:
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidRoom)
	case u.AvailableCount != nil && *u.AvailableCount < 0:
		return fmt.Errorf("%w: available_count must not be negative", ErrInvalidRoom)
	case u.Capacity != nil && *u.Capacity < 0:
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidRoom)
	}
	return nil
}

func (u RoomUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Rate != nil {
		cols["rate"] = *u.Rate
	}
	if u.AvailableCount != nil {
		cols["available_count"] = *u.AvailableCount
	}
	if u.Capacity != nil {
		cols["capacity"] = *u.Capacity
	}
	return cols
}

// Get returns the room type with code.
func (s *Store) Get(ctx context.Context, code string) (reconcile.Room, error) {
	room, err := s.find(s.db.WithContext(ctx), code)
	if err != nil {
		return reconcile.Room{}, err
	}
	return toRoom(room), nil
}

// SetAbsolute overwrites the count and/or rate. A negative count is stored as zero.
func (s *Store) SetAbsolute(ctx context.Context, code string, count *int, rate *float64) error {
	update := RoomUpdate{Rate: rate}
	if count != nil {
		c := max(*count, 0)
		update.AvailableCount = &c
	}

	cols := update.columns()
	if len(cols) == 0 {
		_, err := s.find(s.db.WithContext(ctx), code)
		return err
	}

	res := s.db.WithContext(ctx).Model(&models.RoomType{}).Where("code = ?", code).Updates(cols)
	if res.Error != nil {
		return fmt.Errorf("set room type %s: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", reconcile.ErrRoomTypeNotFound, code)
	}
	return nil
}

// Adjust adds delta to the available count in a single UPDATE so concurrent
// adjustments never lose each other. The count never drops below zero, and a
// release never lifts it above a positive capacity.
func (s *Store) Adjust(ctx context.Context, code string, delta int) (int, error) {
	expr := gorm.Expr("CASE WHEN available_count + ? < 0 THEN 0 ELSE available_count + ? END", delta, delta)
	if delta > 0 {
		expr = gorm.Expr("CASE WHEN capacity > 0 AND available_count + ? > capacity THEN capacity ELSE available_count + ? END", delta, delta)
	}

	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.RoomType{}).Where("code = ?", code).Update("available_count", expr)
		if res.Error != nil {
			return fmt.Errorf("adjust room type %s: %w", code, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", reconcile.ErrRoomTypeNotFound, code)
		}

		room, err := s.find(tx, code)
		if err != nil {
			return err
		}
		count = room.AvailableCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List returns every room type ordered by code.
func (s *Store) List(ctx context.Context) ([]models.RoomType, error) {
	var rooms []models.RoomType
	if err := s.db.WithContext(ctx).Order("code").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return rooms, nil
}

// Upsert applies an administrative update, creating the room type when it
// does not exist yet.
func (s *Store) Upsert(ctx context.Context, code string, update RoomUpdate) (*models.RoomType, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidRoom)
	}
	if err := update.validate(); err != nil {
		return nil, err
	}

	var room models.RoomType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.RoomType{Code: code}
		if update.Name != nil {
			row.Name = *update.Name
		}
		if update.Rate != nil {
			row.Rate = *update.Rate
		}
		if update.AvailableCount != nil {
			row.AvailableCount = *update.AvailableCount
		}
		if update.Capacity != nil {
			row.Capacity = *update.Capacity
		}

		onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}
		if cols := update.columns(); len(cols) > 0 {
			cols["updated_at"] = time.Now()
			onConflict = clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoUpdates: clause.Assignments(cols)}
		}
		if err := tx.Clauses(onConflict).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert room type %s: %w", code, err)
		}

		found, err := s.find(tx, code)
		if err != nil {
			return err
		}
		room = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Prepare creates or updates the inventory tables.
func (s *Store) Prepare(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.RoomType{}, &models.ProcessedEventLog{}); err != nil {
		return fmt.Errorf("migrate inventory schema: %w", err)
	}
	return nil
}

// CheckSchema reports the columns missing per table. An empty map means the
// schema is complete.
func (s *Store) CheckSchema(ctx context.Context) (map[string][]string, error) {
	tables := map[string][]string{
		models.RoomType{}.TableName():          models.RoomTypeColumns,
		models.ProcessedEventLog{}.TableName(): models.ProcessedEventLogColumns,
	}

	report := map[string][]string{}
	for table, required := range tables {
		missing, err := database.MissingColumns(s.db.WithContext(ctx), table, required)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			report[table] = missing
		}
	}
	return report, nil
}

func (s *Store) find(db *gorm.DB, code string) (models.RoomType, error) {
	var room models.RoomType
	err := db.Where("code = ?", code).Take(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room, fmt.Errorf("%w: %s", reconcile.ErrRoomTypeNotFound, code)
	}
	if err != nil {
		return room, fmt.Errorf("get room type %s: %w", code, err)
	}
	return room, nil
}

func toRoom(r models.RoomType) reconcile.Room {
	return reconcile.Room{
		Code:           r.Code,
		Name:           r.Name,
		Rate:           r.Rate,
		AvailableCount: r.AvailableCount,
		Capacity:       r.Capacity,
	}
}
