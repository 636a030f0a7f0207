// Package storage defines the object-store boundary for processed image
// bytes. Swap implementations by changing the concrete type injected at
// startup; the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"fmt"
)

// UploadedObject identifies a stored object and its public URL.
type UploadedObject struct {
	Key string
	URL string
}

// ObjectStore is the interface for uploading and deleting encoded variants.
type ObjectStore interface {
	// Upload writes data under key and returns the key with its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (UploadedObject, error)

	// Delete removes the object at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// PublicURL constructs the browser-accessible URL for a key.
	PublicURL(key string) string
}

// StorageError wraps an object-store I/O failure.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
