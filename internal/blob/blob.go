package blob

import (
	"context"
	"time"
)

// Store abstracts the object storage holding generated flower images.
type Store interface {
	// Put writes data at key, overwriting any previous object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes the object at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// SignedURL issues a time-limited read URL for the object at key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
