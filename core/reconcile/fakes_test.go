package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"hotel-inventory/core/lock"
	"hotel-inventory/core/upstream"

	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory Store with the same clamping rules as the SQL one.
type memStore struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	fail    map[string]error
	panics  map[string]bool
	writes  int
	adjusts int
}

func newMemStore(rooms ...Room) *memStore {
	s := &memStore{rooms: map[string]*Room{}, fail: map[string]error{}, panics: map[string]bool{}}
	for i := range rooms {
		room := rooms[i]
		s.rooms[room.Code] = &room
	}
	return s
}

func (s *memStore) Get(_ context.Context, code string) (Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	if !ok {
		return Room{}, ErrRoomTypeNotFound
	}
	return *room, nil
}

func (s *memStore) SetAbsolute(_ context.Context, code string, count *int, rate *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(code); err != nil {
		return err
	}
	room := s.rooms[code]
	if count != nil {
		room.AvailableCount = *count
	}
	if rate != nil {
		room.Rate = *rate
	}
	s.writes++
	return nil
}

func (s *memStore) Adjust(_ context.Context, code string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(code); err != nil {
		return 0, err
	}
	room := s.rooms[code]
	next := room.AvailableCount + delta
	if next < 0 {
		next = 0
	}
	if delta > 0 && room.Capacity > 0 && next > room.Capacity {
		next = room.Capacity
	}
	room.AvailableCount = next
	s.writes++
	s.adjusts++
	return next, nil
}

func (s *memStore) check(code string) error {
	if s.panics[code] {
		panic("store exploded")
	}
	if err := s.fail[code]; err != nil {
		return err
	}
	if _, ok := s.rooms[code]; !ok {
		return ErrRoomTypeNotFound
	}
	return nil
}

func (s *memStore) count(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[code].AvailableCount
}

// memLog is an in-memory EventLog.
type memLog struct {
	mu        sync.Mutex
	entries   []LogEntry
	seenErr   error
	appendErr error
}

func (l *memLog) Seen(_ context.Context, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seenErr != nil {
		return false, l.seenErr
	}
	for _, e := range l.entries {
		if e.ReceiptToken == token && e.Outcome != OutcomeApplyFailed {
			return true, nil
		}
	}
	return false, nil
}

func (l *memLog) Append(ctx context.Context, entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.appendErr != nil {
		return l.appendErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.entries = append(l.entries, entry)
	return nil
}

// mockAcker is a testify mock for Acknowledger.
type mockAcker struct {
	mock.Mock
}

func (m *mockAcker) Acknowledge(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// ackAll returns an acker that accepts every token.
func ackAll() *mockAcker {
	m := &mockAcker{}
	m.On("Acknowledge", mock.Anything, mock.Anything).Return(nil)
	return m
}

type fakePoller struct {
	batch []upstream.InboundEvent
	err   error
	calls int
}

func (p *fakePoller) Poll(_ context.Context, maxMessages int) ([]upstream.InboundEvent, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if len(p.batch) > maxMessages {
		return p.batch[:maxMessages], nil
	}
	return p.batch, nil
}

type fakeArchiver struct {
	err    error
	bodies [][]byte
}

func (a *fakeArchiver) Archive(_ context.Context, cycleID string, _ time.Time, body []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.bodies = append(a.bodies, body)
	return "batches/" + cycleID + ".json", nil
}

type fakeLease struct {
	released bool
}

func (l *fakeLease) Release(context.Context) error {
	l.released = true
	return nil
}

type fakeLocker struct {
	lease *fakeLease
	busy  bool
	err   error
}

func (l *fakeLocker) Acquire(context.Context) (lock.Lease, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.busy {
		return nil, nil
	}
	return l.lease, nil
}

var errBoom = errors.New("boom")

func event(token string, payload map[string]any) upstream.InboundEvent {
	raw, _ := json.Marshal(payload)
	return upstream.InboundEvent{ReceiptToken: token, Payload: payload, ReceivedAt: time.Now(), Raw: raw}
}

func booking(code string, rooms int, status string) map[string]any {
	return map[string]any{
		"event_type": "RESERVATION",
		"reservation": map[string]any{
			"room_type_code": code,
			"room_count":     rooms,
			"booking_status": status,
		},
	}
}

func cancellation(code string, rooms int) map[string]any {
	return map[string]any{
		"event_type":  "RESERVATION",
		"reservation": map[string]any{"room_type_code": code, "room_count": rooms, "status": "CANCELLED"},
	}
}
