package storage

import (
	"context"
	"io"
	"time"
)

type Uploader interface {
	// Upload writes the blob and returns the stored object key. Writing the
	// same key twice overwrites, so retrying a failed upload is idempotent.
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

type Signer interface {
	SignedGetURL(objectName string, ttl time.Duration) (string, error)
}
