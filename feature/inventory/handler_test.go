package inventory_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel-inventory/core/database"
	"hotel-inventory/core/reconcile"
	"hotel-inventory/feature/inventory"
	"hotel-inventory/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *inventory.Service) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	feature := inventory.NewFeature(db, zap.NewNop())
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Service().Store().Prepare(context.Background()))

	require.NoError(t, db.Create(&models.RoomType{Code: "NSQ", Name: "Queen", Rate: 120, AvailableCount: 3}).Error)

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, feature.Service()
}

func decode(t *testing.T, body io.Reader, v any) {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

func TestHandleListRooms(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/rooms", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var rooms []models.RoomType
	decode(t, resp.Body, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, "NSQ", rooms[0].Code)
}

func TestHandleGetRoom(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/rooms/NSQ", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var room reconcile.Room
	decode(t, resp.Body, &room)
	assert.Equal(t, 3, room.AvailableCount)

	resp, err = app.Test(httptest.NewRequest("GET", "/rooms/NOPE", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleUpdateRoom(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("PUT", "/rooms/NSQ", strings.NewReader(`{"available_count": 7, "capacity": 12}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var room models.RoomType
	decode(t, resp.Body, &room)
	assert.Equal(t, 7, room.AvailableCount)
	assert.Equal(t, 12, room.Capacity)
	assert.Equal(t, "Queen", room.Name)

	req = httptest.NewRequest("PUT", "/rooms/NSQ", strings.NewReader(`{"rate": -5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	req = httptest.NewRequest("PUT", "/rooms/NSQ", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleListEvents(t *testing.T) {
	app, svc := setupTestApp(t)
	ctx := context.Background()
	for _, token := range []string{"t1", "t2"} {
		require.NoError(t, svc.EventLog().Append(ctx, reconcile.LogEntry{
			CycleID:      "cycle-1",
			ReceiptToken: token,
			Outcome:      reconcile.OutcomeApplied,
			Payload:      []byte(`{}`),
			ProcessedAt:  time.Now(),
		}))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/events?token=t2", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var entries []models.ProcessedEventLog
	decode(t, resp.Body, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "t2", entries[0].ReceiptToken)
}

func TestHandleHealth(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report inventory.HealthReport
	decode(t, resp.Body, &report)
	assert.Equal(t, "ok", report.Status)
}

func TestFeature_DisabledWithoutDatabase(t *testing.T) {
	feature := inventory.NewFeature(nil, nil)

	assert.Equal(t, "inventory", feature.Name())
	assert.False(t, feature.IsEnabled())
	assert.Nil(t, feature.Service())
}
