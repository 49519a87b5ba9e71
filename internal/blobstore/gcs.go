package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/googleapis/gax-go/v2"
)

const (
	// Signed URLs stay valid just long enough for the client to fetch the
	// image; stored keys are never exposed as durable links.
	signedURLTTL = time.Minute

	// A stuck signing call must not hang the surrounding response.
	signTimeout = 5 * time.Second
)

var whitespace = regexp.MustCompile(`\s+`)

// GCS stores product images in a single private bucket.
type GCS struct {
	client *storage.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is empty")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

// Upload writes the content under a fresh object key and returns the key.
// The key, not a URL, is what gets persisted.
func (g *GCS) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	safeName := whitespace.ReplaceAllString(name, "_")
	key := fmt.Sprintf("products/%d-%s", time.Now().UnixMilli(), safeName)

	// The key is fresh per call, so rewriting it on a transient failure is
	// safe.
	obj := g.client.Bucket(g.bucket).Object(key).Retryer(
		storage.WithBackoff(gax.Backoff{Initial: 200 * time.Millisecond, Max: 2 * time.Second}),
		storage.WithPolicy(storage.RetryAlways),
	)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// SignedURL resolves an object key to a V4 signed read URL. Values already
// shaped like absolute URLs pass through unchanged (migrated legacy rows
// store literal URLs), and an empty key resolves to nothing.
func (g *GCS) SignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if strings.HasPrefix(key, "http") {
		return key, nil
	}

	ctx, cancel := context.WithTimeout(ctx, signTimeout)
	defer cancel()

	type result struct {
		url string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		url, err := g.client.Bucket(g.bucket).SignedURL(key, &storage.SignedURLOptions{
			Scheme:  storage.SigningSchemeV4,
			Method:  http.MethodGet,
			Expires: time.Now().Add(signedURLTTL),
		})
		ch <- result{url: url, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return "", fmt.Errorf("sign %s: %w", key, res.err)
		}
		return res.url, nil
	case <-ctx.Done():
		return "", fmt.Errorf("sign %s: %w", key, ctx.Err())
	}
}

func (g *GCS) Close() error {
	return g.client.Close()
}
