// Package poller drives poll cycles: on a timer while the server runs, and on
// demand through the HTTP API.
//
// # HTTP Endpoints
//
//   - POST /poll : Run one cycle now (409 while one is running, 502 on upstream errors).
//   - POST /poll?dry_run=true : Poll and classify only.
//   - GET /poll/last : Outcome of the most recent cycle.
package poller
