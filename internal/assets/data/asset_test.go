package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lk2023060901/ai-translate-backend/internal/pkg/minio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// s3Stub answers HEAD requests for a fixed set of object keys.
func s3Stub(t *testing.T, status map[string]int) *AssetStore {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, ok := status[r.URL.Path]
		if !ok {
			code = http.StatusNotFound
		}
		if code == http.StatusOK {
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.Header().Set("Last-Modified", time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC).Format(http.TimeFormat))
			w.Header().Set("Content-Length", "0")
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)

	cfg := minio.DefaultConfig()
	cfg.Endpoint = strings.TrimPrefix(srv.URL, "http://")
	cfg.Region = "us-east-1"
	cfg.BucketLookup = minio.BucketLookupPath
	cfg.AccessKeyID = "minioadmin"
	cfg.SecretAccessKey = "minioadmin"

	client, err := minio.NewClient(cfg, nil)
	require.NoError(t, err)
	return &AssetStore{client: client}
}

func TestAssetStoreExists(t *testing.T) {
	store := s3Stub(t, map[string]int{
		"/translation-assets/files/present.md": http.StatusOK,
		"/translation-assets/files/denied.md":  http.StatusForbidden,
	})
	ctx := context.Background()

	ok, err := store.Exists(ctx, "files/present.md")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "files/gone.md")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(ctx, "files/denied.md")
	assert.Error(t, err)
	assert.False(t, ok)
}
