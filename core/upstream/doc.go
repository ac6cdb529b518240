// Package upstream is the HTTP client for the property-management system's
// message stream.
//
// # Operations
//
//   - Poll: GET .../stream/{app}/poll?num_of_messages=N. An empty body, "[]" or
//     "null" means no messages; a bare object is a batch of one.
//   - Acknowledge: POST .../stream/{app}/acknowledge with {"receiptHandle": token}.
//
// Both calls authenticate with HTTP basic auth. Delivery is at-least-once: a
// message that is not acknowledged comes back on a later poll.
//
// # Errors
//
//   - ErrUnavailable: transport failure, timeout or non-2xx response.
//   - ErrMalformed: the poll body is not a batch of JSON objects.
//   - ErrAckFailed: one token was not acknowledged (may also wrap ErrUnavailable).
package upstream
