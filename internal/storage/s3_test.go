package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "a.png"},
		{"blog/images", "blog/images/a.png"},
		{"/blog/images/", "blog/images/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectKey(tt.prefix, "a.png"))
		})
	}
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "", (&Client{}).PublicURL("k.png"))
	assert.Equal(t, "https://cdn.example.com/blog/k.png", (&Client{publicURL: "https://cdn.example.com"}).PublicURL("blog/k.png"))
	assert.Equal(t, "https://cdn.example.com/blog/k.png", (&Client{publicURL: "https://cdn.example.com/"}).PublicURL("blog/k.png"))
}

func TestGeneratePresignedURL(t *testing.T) {
	c, err := NewClient(context.Background(), S3Options{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "blog-assets",
		AccessKey: "minio",
		SecretKey: "minio-secret",
		Prefix:    "blog/images",
	})
	require.NoError(t, err)

	key := c.ObjectKey("2026-01-14-vocab-kiitos.png")
	assert.Equal(t, "blog/images/2026-01-14-vocab-kiitos.png", key)

	url, err := c.GeneratePresignedURL(context.Background(), key, time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/blog-assets/blog/images/2026-01-14-vocab-kiitos.png?"), url)
	assert.Contains(t, url, "X-Amz-Signature=")
}
