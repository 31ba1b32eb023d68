// Package storage abstracts the object store that holds uploaded media.
// Database rows keep only bucket-relative keys; URLs are minted here.
package storage

import (
	"context"
	"io"
)

// ObjectStore is the interface upload handling depends on. The production
// implementation is S3-compatible (MinIO in development, S3 in production).
type ObjectStore interface {
	// Put streams an object to the bucket under key.
	Put(ctx context.Context, key string, contentType string, size int64, body io.Reader) error

	// Remove deletes the object under key. Removing a missing key is not
	// an error.
	Remove(ctx context.Context, key string) error

	// List returns the keys under prefix, up to max.
	List(ctx context.Context, prefix string, max int32) ([]string, error)

	// PublicURL returns the unsigned object URL for key. Only meaningful
	// when the bucket allows public reads.
	PublicURL(key string) string

	// SignedGetURL mints a short-lived presigned GET URL for key.
	SignedGetURL(ctx context.Context, key string) (string, error)
}
