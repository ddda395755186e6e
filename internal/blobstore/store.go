// Package blobstore defines the remote object-store capability consumed
// by the sync loops, together with its S3 implementation.
package blobstore

import "context"

// Store is the only interface the sync loops have to the remote backend.
// One Store instance is bound to one bucket.
type Store interface {
	// Upload transfers the file at localPath to the bucket under key.
	Upload(ctx context.Context, localPath, key string) error

	// Download transfers the object named key into localPath.
	Download(ctx context.Context, key, localPath string) error

	// ListKeys returns all object keys currently in the bucket. An empty
	// bucket yields an empty slice, not an error.
	ListKeys(ctx context.Context) ([]string, error)
}
