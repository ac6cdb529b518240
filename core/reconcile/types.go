package reconcile

import (
	"context"
	"encoding/json"
	"time"

	"hotel-inventory/core/events"
	"hotel-inventory/core/upstream"
)

// Outcome is the final state of one event in a cycle.
type Outcome string

const (
	// OutcomeApplied means the inventory mutation was stored and acknowledged.
	OutcomeApplied Outcome = "applied"
	// OutcomeSkipped means there was nothing to apply (unrecognized event or
	// unknown room type); the event was acknowledged.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeDuplicate means the receipt token was already processed.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeApplyFailed means the mutation was not stored. The event is not
	// acknowledged so the upstream redelivers it.
	OutcomeApplyFailed Outcome = "apply_failed"
	// OutcomeAckFailed means the event was handled but the acknowledgment
	// failed. Any mutation stands.
	OutcomeAckFailed Outcome = "ack_failed"
)

// needsAck reports whether an event in this state is acknowledged.
func (o Outcome) needsAck() bool {
	return o != OutcomeApplyFailed
}

// Room is the cached availability of one room type.
type Room struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Rate           float64 `json:"rate"`
	AvailableCount int     `json:"available_count"`
	// Capacity caps releases when positive.
	Capacity int `json:"capacity"`
}

// Store holds per room-type availability counters.
type Store interface {
	Get(ctx context.Context, code string) (Room, error)
	// SetAbsolute replaces the count and/or rate. Nil leaves a field unchanged.
	SetAbsolute(ctx context.Context, code string, count *int, rate *float64) error
	// Adjust atomically adds delta to the count, clamped at zero, and returns
	// the stored value.
	Adjust(ctx context.Context, code string, delta int) (int, error)
}

// EventLog is the append-only record of processed events.
type EventLog interface {
	// Seen reports whether the token already has an entry that was not a
	// failed apply.
	Seen(ctx context.Context, receiptToken string) (bool, error)
	Append(ctx context.Context, entry LogEntry) error
}

// Acknowledger confirms one delivery to the upstream.
type Acknowledger interface {
	Acknowledge(ctx context.Context, receiptToken string) error
}

// LogEntry is one processed-event record.
type LogEntry struct {
	CycleID      string
	ReceiptToken string
	Kind         events.Kind
	RoomTypeCode string
	Payload      json.RawMessage
	Outcome      Outcome
	Detail       string
	ProcessedAt  time.Time
}

// Action is a classified event waiting to be applied.
type Action struct {
	Event          upstream.InboundEvent
	Classification events.Classification
	// Err is set when classification itself failed.
	Err error
}

// Plan is the classified batch in arrival order.
type Plan struct {
	Actions []Action    `json:"-"`
	Summary PlanSummary `json:"summary"`
}

// PlanSummary counts the actions of a plan by kind.
type PlanSummary struct {
	Total             int `json:"total"`
	AbsoluteUpdates   int `json:"absolute_updates"`
	ReservationDeltas int `json:"reservation_deltas"`
	Unrecognized      int `json:"unrecognized"`
	Invalid           int `json:"invalid"`
}

// Result is the outcome of one event.
type Result struct {
	ReceiptToken string      `json:"receipt_token"`
	Outcome      Outcome     `json:"outcome"`
	Kind         events.Kind `json:"kind,omitempty"`
	RoomTypeCode string      `json:"room_type_code,omitempty"`
	Detail       string      `json:"detail,omitempty"`
	// AvailableCount is the stored count after a reservation delta.
	AvailableCount *int `json:"available_count,omitempty"`
	// Logged is false when the log entry could not be written.
	Logged bool `json:"logged"`
}

// Counts tallies results by outcome.
type Counts struct {
	Applied     int `json:"applied"`
	Skipped     int `json:"skipped"`
	Duplicate   int `json:"duplicate"`
	ApplyFailed int `json:"apply_failed"`
	AckFailed   int `json:"ack_failed"`
}

func (c *Counts) add(o Outcome) {
	switch o {
	case OutcomeApplied:
		c.Applied++
	case OutcomeSkipped:
		c.Skipped++
	case OutcomeDuplicate:
		c.Duplicate++
	case OutcomeApplyFailed:
		c.ApplyFailed++
	case OutcomeAckFailed:
		c.AckFailed++
	}
}

// Summary reports one poll cycle.
type Summary struct {
	CycleID    string    `json:"cycle_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// NoWork is set when the poll returned no messages.
	NoWork bool `json:"no_work"`
	// Busy is set when another cycle held the lease.
	Busy       bool     `json:"busy"`
	Polled     int      `json:"polled"`
	ArchiveKey string   `json:"archive_key,omitempty"`
	Counts     Counts   `json:"counts"`
	Results    []Result `json:"results"`
}
