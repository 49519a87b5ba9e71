package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pass-through and empty-key handling run before any client call, so a
// zero-value adapter suffices here.
func TestSignedURL_PassThrough(t *testing.T) {
	t.Parallel()

	g := &GCS{bucket: "test-bucket"}
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "http url unchanged", key: "http://cdn.example.com/a.png", want: "http://cdn.example.com/a.png"},
		{name: "https url unchanged", key: "https://cdn.example.com/a.png", want: "https://cdn.example.com/a.png"},
		{name: "empty key resolves to nothing", key: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := g.SignedURL(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// An already-resolved URL fed back through resolution must come out
// unchanged, however many times it loops.
func TestSignedURL_ResolvedURLRoundTrip(t *testing.T) {
	t.Parallel()

	g := &GCS{bucket: "test-bucket"}
	ctx := context.Background()

	url := "https://storage.example.com/products/1-a.png?X-Goog-Signature=abc"
	for i := 0; i < 3; i++ {
		got, err := g.SignedURL(ctx, url)
		require.NoError(t, err)
		require.Equal(t, url, got)
	}
}
