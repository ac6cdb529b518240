// Package config provides configuration management for the inventory poller.
//
// Settings come from environment variables, optionally seeded from a .env
// file. Every field declares its default in a `default` struct tag, and
// nested keys map to upper-case env names joined by underscores
// (upstream.app_id -> UPSTREAM_APP_ID).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, swagger toggle
//   - Upstream: stream host, app id and basic-auth credentials
//   - Reconcile: batch size, cycle interval, ack concurrency
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO archive of raw poll batches
//   - Lock: redis lease that serialises cycles across instances
//   - Log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.IntervalSeconds)
package config
