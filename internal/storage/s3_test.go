package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBucket() *Bucket {
	return NewBucket(Options{
		Bucket:          "avatars",
		Region:          "auto",
		Endpoint:        "https://storage.example.com",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		PublicURL:       "https://cdn.example.com/",
	})
}

func TestPublicURLRoundTrip(t *testing.T) {
	b := testBucket()

	u := b.PublicURL("avatars/u1/a.png")
	assert.Equal(t, "https://cdn.example.com/avatars/u1/a.png", u)

	key, ok := b.KeyFromURL(u)
	assert.True(t, ok)
	assert.Equal(t, "avatars/u1/a.png", key)

	_, ok = b.KeyFromURL("https://elsewhere.example.com/a.png")
	assert.False(t, ok)
}

func TestPresignUpload(t *testing.T) {
	b := testBucket()

	raw, err := b.PresignUpload(context.Background(), "avatars/u1/a.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "storage.example.com", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/avatars/avatars/u1/a.png"))
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}
