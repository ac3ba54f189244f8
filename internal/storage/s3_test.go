package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"liftlog/api/internal/config"
	"liftlog/api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   []byte
}

func fakeS3(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, body: body})
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func testConfig(endpoint string) config.S3Config {
	return config.S3Config{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		BucketName:      "exports",
	}
}

func TestNewS3Storage_Disabled(t *testing.T) {
	_, err := storage.NewS3Storage(context.Background(), config.S3Config{})
	assert.ErrorIs(t, err, storage.ErrStorageDisabled)
}

func TestS3Storage_PresignedDownloadURL(t *testing.T) {
	s, err := storage.NewS3Storage(context.Background(), testConfig("http://127.0.0.1:9000"))
	require.NoError(t, err)

	raw, err := s.GeneratePresignedDownloadURL(context.Background(), "users/abc/export.json", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/exports/users/abc/export.json", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestS3Storage_PresignedDownloadURL_DefaultExpiry(t *testing.T) {
	s, err := storage.NewS3Storage(context.Background(), testConfig("http://127.0.0.1:9000"))
	require.NoError(t, err)

	raw, err := s.GeneratePresignedDownloadURL(context.Background(), "k.json", 0)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestS3Storage_PutAndDelete(t *testing.T) {
	srv, requests := fakeS3(t)
	s, err := storage.NewS3Storage(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.PutObject(ctx, "users/abc/export.json", "application/json", []byte(`{"ok":true}`)))
	require.NoError(t, s.DeleteObject(ctx, "users/abc/export.json"))

	got := requests()
	require.Len(t, got, 2)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/exports/users/abc/export.json", got[0].path)
	assert.Contains(t, string(got[0].body), `{"ok":true}`)
	assert.Equal(t, http.MethodDelete, got[1].method)
}
