// Package inventory implements the room availability feature.
//
// It owns the two tables the reconciler works against:
//   - room_types: the per room-type count and rate shown on the public site.
//   - processed_event_logs: one insert-only row per handled upstream event,
//     also used as the receipt-token idempotency guard.
//
// # Components
//
//   - Store: reconcile.Store on gorm. Adjust is a single conditional UPDATE
//     so overlapping cycles cannot lose increments.
//   - EventLog: reconcile.EventLog on gorm with a JSON payload snapshot.
//   - Service / Handler: operator HTTP API.
//   - Feature: registers the routes with the loader.
//
// # HTTP Endpoints
//
//   - GET /rooms : List room types.
//   - GET /rooms/:code : Get one room type.
//   - PUT /rooms/:code : Administrative override (creates when missing).
//   - GET /events?token=&outcome=&cycle=&limit= : Processed event log.
//   - GET /health : Database reachability and schema check.
package inventory
