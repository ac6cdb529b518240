// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the poller process and the
// operator HTTP API.
//
// # Context Awareness
//
// Two helpers scope a logger to a unit of work:
//   - WithRayID attaches the request's RayID taken from a Fiber context.
//   - WithCycle attaches the id of the poll cycle being reconciled.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Poller started")
//
//	l := logger.WithCycle(log, summary.CycleID)
//	l.Warn("Acknowledge failed", zap.Error(err))
package logger
