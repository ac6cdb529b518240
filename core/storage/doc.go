// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so raw poll batches can be archived to AWS S3
// or a self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Archiver
//
// Archiver stores one JSON object per poll cycle under
// <prefix>/<yyyy>/<mm>/<dd>/<cycle-id>.json, creating the bucket on first use.
//
// # Usage
//
//	archiver, err := storage.OpenArchiver(cfg.Storage) // nil when storage.enabled is false
//	key, err := archiver.Archive(ctx, cycleID, time.Now(), body)
package storage
