package reconcile

import (
	"fmt"

	"hotel-inventory/core/events"
	"hotel-inventory/core/upstream"
)

// BuildPlan classifies every event of a batch, keeping arrival order.
// It does not touch the store or the upstream; dry runs stop here.
func BuildPlan(batch []upstream.InboundEvent) *Plan {
	plan := &Plan{Actions: make([]Action, 0, len(batch))}

	for _, ev := range batch {
		classification, err := classify(ev)
		plan.Actions = append(plan.Actions, Action{Event: ev, Classification: classification, Err: err})

		plan.Summary.Total++
		if err != nil {
			plan.Summary.Invalid++
			continue
		}
		switch classification.Kind() {
		case events.KindAbsoluteUpdate:
			plan.Summary.AbsoluteUpdates++
		case events.KindReservationDelta:
			plan.Summary.ReservationDeltas++
		default:
			plan.Summary.Unrecognized++
		}
	}

	return plan
}

// classify shields the batch from a payload that makes the classifier panic.
func classify(ev upstream.InboundEvent) (c events.Classification, err error) {
	defer func() {
		if p := recover(); p != nil {
			c, err = nil, fmt.Errorf("classify %s: %v", ev.ReceiptToken, p)
		}
	}()
	return events.Classify(ev.Payload), nil
}
