// Package lock serialises poll cycles across processes with a redis lease.
//
// The lease keeps at most one cycle running per key. A holder that dies
// releases it by TTL.
package lock
