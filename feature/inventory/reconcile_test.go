package inventory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hotel-inventory/core/reconcile"
	"hotel-inventory/core/upstream"
	"hotel-inventory/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cancellingAcker cancels the cycle context on its first call and fails it.
type cancellingAcker struct {
	cancel context.CancelFunc
	calls  int
}

func (a *cancellingAcker) Acknowledge(ctx context.Context, _ string) error {
	a.calls++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
		return ctx.Err()
	}
	return nil
}

func bookingEvent(t *testing.T, token, code string) upstream.InboundEvent {
	t.Helper()
	payload := map[string]any{
		"event_type":  "RESERVATION",
		"reservation": map[string]any{"room_type_code": code, "room_count": 1, "booking_status": "BOOKED"},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return upstream.InboundEvent{ReceiptToken: token, Payload: payload, ReceivedAt: time.Now(), Raw: raw}
}

func TestReconcile_CancelledCycleStaysIdempotent(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, models.RoomType{Code: "SK", Name: "King", AvailableCount: 3})
	store := NewStore(db)
	events := NewEventLog(db)

	ctx, cancel := context.WithCancel(context.Background())
	acker := &cancellingAcker{cancel: cancel}
	batch := []upstream.InboundEvent{bookingEvent(t, "a", "SK")}

	first := reconcile.NewReconciler(store, events, acker, nil, reconcile.Config{}).
		Apply(ctx, "cycle-1", reconcile.BuildPlan(batch))
	require.Len(t, first.Results, 1)
	assert.Equal(t, reconcile.OutcomeAckFailed, first.Results[0].Outcome)
	assert.True(t, first.Results[0].Logged)

	rows, err := events.List(context.Background(), EventFilter{ReceiptToken: "a"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, string(reconcile.OutcomeAckFailed), rows[0].Outcome)
	assert.Equal(t, string(reconcile.OutcomeApplied), rows[1].Outcome)

	again := reconcile.NewReconciler(store, events, acker, nil, reconcile.Config{}).
		Apply(context.Background(), "cycle-2", reconcile.BuildPlan(batch))
	require.Len(t, again.Results, 1)
	assert.Equal(t, reconcile.OutcomeDuplicate, again.Results[0].Outcome)

	room, err := store.Get(context.Background(), "SK")
	require.NoError(t, err)
	assert.Equal(t, 2, room.AvailableCount)
	assert.Equal(t, 2, acker.calls)
}
