package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
)

// Archiver writes the raw body of each polled batch to object storage so a
// cycle can be replayed or audited after the upstream has dropped it.
type Archiver struct {
	client Client
	bucket string
	prefix string

	mu          sync.Mutex
	bucketReady bool
}

// NewArchiver creates an archiver writing under prefix in bucket.
func NewArchiver(client Client, bucket, prefix string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix}
}

// OpenArchiver builds the batch archiver described by cfg. It returns a nil
// archiver when archiving is disabled.
func OpenArchiver(cfg Config) (*Archiver, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("storage.bucket is required when archiving is enabled")
	}
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewArchiver(client, cfg.Bucket, strings.Trim(cfg.Prefix, "/")), nil
}

// EnsureBucket creates the archive bucket when it does not exist yet.
// A successful check is remembered for the lifetime of the archiver.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.bucketReady {
		return nil
	}

	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}
	a.bucketReady = true
	return nil
}

// ObjectKey returns the key a batch polled at the given time is stored under.
func (a *Archiver) ObjectKey(cycleID string, at time.Time) string {
	return path.Join(a.prefix, at.UTC().Format("2006/01/02"), cycleID+".json")
}

// Archive stores body as one JSON object and returns its key.
func (a *Archiver) Archive(ctx context.Context, cycleID string, at time.Time, body []byte) (string, error) {
	if err := a.EnsureBucket(ctx); err != nil {
		return "", err
	}

	key := a.ObjectKey(cycleID, at)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive batch %s: %w", key, err)
	}
	return key, nil
}
