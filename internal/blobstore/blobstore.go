package blobstore

import (
	"context"
	"io"
)

// Signer converts a stored object key into a short-lived retrieval URL.
type Signer interface {
	SignedURL(ctx context.Context, key string) (string, error)
}

// Store is the full blob-store surface: upload binary content under an
// opaque key, and sign keys for retrieval.
type Store interface {
	Signer
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}
