// Package reconcile turns polled upstream events into inventory changes.
//
// A cycle has two steps, mirroring a plan/apply workflow:
//
//   - BuildPlan classifies every event of a batch in arrival order without
//     side effects. Dry runs stop here.
//   - Reconciler.Apply walks the plan: idempotency check against the event
//     log, store mutation, concurrent acknowledgment, then one log entry per
//     event with its final outcome.
//
// Failures are isolated per event. A store failure leaves the event
// unacknowledged (outcome apply_failed) so the upstream redelivers it; an
// acknowledgment failure keeps the mutation (outcome ack_failed) and the
// idempotency check prevents it from being applied twice on redelivery.
//
// Driver wraps one cycle end to end: optional lease, poll, optional raw
// batch archive, plan and apply.
//
// # Usage Example
//
//	r := reconcile.NewReconciler(store, eventLog, client, logger, cfg.Reconcile)
//	d := reconcile.NewDriver(client, r, cfg.Reconcile, logger).
//	    WithLocker(locker).
//	    WithArchiver(archiver)
//
//	summary, err := d.RunCycle(ctx)
package reconcile
