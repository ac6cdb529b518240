package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel-inventory/core/events"
	"hotel-inventory/core/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultAckConcurrency = 4

// Reconciler applies classified events to the store, acknowledges them
// and records the outcome of each one.
type Reconciler struct {
	store          Store
	log            EventLog
	acker          Acknowledger
	logger         *zap.Logger
	ackConcurrency int
	now            func() time.Time
}

// NewReconciler creates a reconciler.
func NewReconciler(store Store, log EventLog, acker Acknowledger, logger *zap.Logger, cfg Config) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.AckConcurrency
	if concurrency <= 0 {
		concurrency = defaultAckConcurrency
	}
	return &Reconciler{
		store:          store,
		log:            log,
		acker:          acker,
		logger:         logger,
		ackConcurrency: concurrency,
		now:            time.Now,
	}
}

// Apply executes a plan. Events are mutated and logged one at a time in
// arrival order, then acknowledged concurrently. A failure in one event
// never affects another; failures are reported in the summary.
//
// Log writes are detached from ctx cancellation: once a mutation commits,
// its log row must exist or a redelivery would apply it again.
func (r *Reconciler) Apply(ctx context.Context, cycleID string, plan *Plan) *Summary {
	l := logger.WithCycle(r.logger, cycleID)
	summary := &Summary{CycleID: cycleID, StartedAt: r.now(), Polled: len(plan.Actions)}
	logCtx := context.WithoutCancel(ctx)

	results := make([]Result, len(plan.Actions))
	handled := make(map[string]bool, len(plan.Actions))
	for i, action := range plan.Actions {
		token := action.Event.ReceiptToken
		if handled[token] {
			results[i] = Result{ReceiptToken: token, Outcome: OutcomeDuplicate, Detail: "repeated in batch"}
			if action.Classification != nil {
				results[i].Kind = action.Classification.Kind()
				results[i].RoomTypeCode = action.Classification.RoomTypeCode()
			}
		} else {
			results[i] = r.applyOne(ctx, action)
			if results[i].Outcome != OutcomeApplyFailed {
				handled[token] = true
			}
		}
		results[i].Logged = r.record(logCtx, l, cycleID, action, results[i])
	}

	r.acknowledge(ctx, l, results)

	for i := range results {
		if results[i].Outcome == OutcomeAckFailed {
			// The first row keeps the apply outcome; this one records the ack failure.
			r.record(logCtx, l, cycleID, plan.Actions[i], results[i])
		}
	}

	for i := range results {
		summary.Counts.add(results[i].Outcome)

		fields := []zap.Field{
			zap.String("receipt_token", results[i].ReceiptToken),
			zap.String("outcome", string(results[i].Outcome)),
			zap.String("kind", string(results[i].Kind)),
			zap.String("room_type_code", results[i].RoomTypeCode),
		}
		if results[i].Detail != "" {
			fields = append(fields, zap.String("detail", results[i].Detail))
		}
		switch results[i].Outcome {
		case OutcomeApplyFailed, OutcomeAckFailed:
			l.Warn("Event not fully processed", fields...)
		default:
			l.Info("Event processed", fields...)
		}
	}

	summary.Results = results
	summary.FinishedAt = r.now()

	l.Info("Reconciliation cycle finished",
		zap.Int("polled", summary.Polled),
		zap.Int("applied", summary.Counts.Applied),
		zap.Int("skipped", summary.Counts.Skipped),
		zap.Int("duplicate", summary.Counts.Duplicate),
		zap.Int("apply_failed", summary.Counts.ApplyFailed),
		zap.Int("ack_failed", summary.Counts.AckFailed),
		zap.Duration("duration", summary.FinishedAt.Sub(summary.StartedAt)))

	return summary
}

func (r *Reconciler) applyOne(ctx context.Context, action Action) (res Result) {
	res = Result{ReceiptToken: action.Event.ReceiptToken}
	defer func() {
		if p := recover(); p != nil {
			res.Outcome = OutcomeApplyFailed
			res.Detail = fmt.Sprintf("panic: %v", p)
		}
	}()

	if action.Err != nil {
		res.Outcome = OutcomeApplyFailed
		res.Detail = action.Err.Error()
		return res
	}
	res.Kind = action.Classification.Kind()
	res.RoomTypeCode = action.Classification.RoomTypeCode()

	seen, err := r.log.Seen(ctx, res.ReceiptToken)
	if err != nil {
		res.Outcome = OutcomeApplyFailed
		res.Detail = fmt.Sprintf("idempotency check: %v", err)
		return res
	}
	if seen {
		res.Outcome = OutcomeDuplicate
		return res
	}

	switch c := action.Classification.(type) {
	case events.AbsoluteUpdate:
		err = r.store.SetAbsolute(ctx, c.Code, c.Count, c.Rate)
	case events.ReservationDelta:
		var count int
		count, err = r.store.Adjust(ctx, c.Code, c.Delta())
		if err == nil {
			res.AvailableCount = &count
		}
	case events.Unrecognized:
		res.Outcome = OutcomeSkipped
		res.Detail = c.Reason
		return res
	default:
		res.Outcome = OutcomeSkipped
		res.Detail = fmt.Sprintf("unsupported classification %T", c)
		return res
	}

	switch {
	case errors.Is(err, ErrRoomTypeNotFound):
		res.Outcome = OutcomeSkipped
		res.Detail = fmt.Sprintf("unknown room type %q", res.RoomTypeCode)
	case err != nil:
		res.Outcome = OutcomeApplyFailed
		res.Detail = fmt.Errorf("%w: %v", ErrStoreWriteFailed, err).Error()
	default:
		res.Outcome = OutcomeApplied
	}
	return res
}

// acknowledge confirms every handled event. Each call is independent: a
// failure only marks its own result.
func (r *Reconciler) acknowledge(ctx context.Context, l *zap.Logger, results []Result) {
	var g errgroup.Group
	g.SetLimit(r.ackConcurrency)

	for i := range results {
		if !results[i].Outcome.needsAck() {
			continue
		}
		g.Go(func() error {
			if err := r.acker.Acknowledge(ctx, results[i].ReceiptToken); err != nil {
				l.Warn("Acknowledge failed",
					zap.String("receipt_token", results[i].ReceiptToken),
					zap.Error(err))
				results[i].Outcome = OutcomeAckFailed
				if results[i].Detail != "" {
					results[i].Detail += "; "
				}
				results[i].Detail += err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Reconciler) record(ctx context.Context, l *zap.Logger, cycleID string, action Action, res Result) bool {
	entry := LogEntry{
		CycleID:      cycleID,
		ReceiptToken: res.ReceiptToken,
		Kind:         res.Kind,
		RoomTypeCode: res.RoomTypeCode,
		Payload:      payloadSnapshot(action),
		Outcome:      res.Outcome,
		Detail:       res.Detail,
		ProcessedAt:  r.now(),
	}
	if err := r.log.Append(ctx, entry); err != nil {
		l.Error("Failed to record processed event",
			zap.String("receipt_token", res.ReceiptToken),
			zap.String("outcome", string(res.Outcome)),
			zap.Error(err))
		return false
	}
	return true
}

func payloadSnapshot(action Action) json.RawMessage {
	if len(action.Event.Raw) > 0 {
		return action.Event.Raw
	}
	b, err := json.Marshal(action.Event.Payload)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
