package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	cache "github.com/Black-And-White-Club/discord-guild-generator/bigcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type fakeObjects struct {
	objects map[string]string
	calls   int
}

func (f *fakeObjects) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	f.calls++
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func TestLoad_DataURI(t *testing.T) {
	r := NewResolver(Options{})
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	asset, err := r.Load(context.Background(), ref, "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", asset.ContentType)
	assert.Equal(t, pngBytes, asset.Data)
	assert.Equal(t, ref, asset.DataURI())
}

func TestLoad_DataURIErrors(t *testing.T) {
	r := NewResolver(Options{})
	for _, ref := range []string{"data:image/png;base64", "data:image/png;base64,!!!", "data:,"} {
		_, err := r.Load(context.Background(), ref, "")
		assert.Error(t, err, ref)
	}
}

func TestLoad_RelativeFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wave.png"), pngBytes, 0o600))

	r := NewResolver(Options{})
	asset, err := r.Load(context.Background(), "wave.png", dir)
	require.NoError(t, err)
	assert.Equal(t, "wave.png", asset.Name)
	assert.Equal(t, "image/png", asset.ContentType)

	file := asset.File()
	body, err := io.ReadAll(file.Reader)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, body)
	assert.Equal(t, "image/png", file.ContentType)
}

func TestLoad_MissingFile(t *testing.T) {
	r := NewResolver(Options{})
	_, err := r.Load(context.Background(), "missing.png", t.TempDir())
	assert.Error(t, err)
}

func TestLoad_HTTPWithCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/icons/mod.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(pngBytes)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c, err := cache.NewCache(ctx, time.Minute, 0)
	require.NoError(t, err)
	defer c.Close()

	r := NewResolver(Options{HTTPClient: server.Client(), Cache: c})

	first, err := r.Load(ctx, server.URL+"/icons/mod.png", "")
	require.NoError(t, err)
	second, err := r.Load(ctx, server.URL+"/icons/mod.png", "")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "second load should come from the cache")
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, "mod.png", second.Name)
	assert.Equal(t, "image/png", second.ContentType)

	_, err = r.Load(ctx, server.URL+"/icons/missing.png", "")
	assert.Error(t, err)
}

func TestLoad_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer server.Close()

	r := NewResolver(Options{HTTPClient: server.Client(), MaxBytes: 32})
	_, err := r.Load(context.Background(), server.URL+"/big.png", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestLoad_DataURITooLarge(t *testing.T) {
	r := NewResolver(Options{MaxBytes: 32})

	tests := []struct {
		name string
		ref  string
	}{
		{"base64", "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, 64))},
		{"percent encoded", "data:text/plain," + strings.Repeat("a", 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Load(context.Background(), tt.ref, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exceeds")
		})
	}

	_, err := r.Load(context.Background(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(make([]byte, 32)), "")
	assert.NoError(t, err)
}

func TestLoad_ObjectStore(t *testing.T) {
	objects := &fakeObjects{objects: map[string]string{"art/emojis/wave.png": string(pngBytes)}}
	r := NewResolver(Options{Objects: objects})

	asset, err := r.Load(context.Background(), "s3://art/emojis/wave.png", "")
	require.NoError(t, err)
	assert.Equal(t, "wave.png", asset.Name)
	assert.Equal(t, pngBytes, asset.Data)

	_, err = r.Load(context.Background(), "s3://art/missing.png", "")
	assert.Error(t, err)

	_, err = r.Load(context.Background(), "s3://art", "")
	assert.Error(t, err)
	assert.Equal(t, 2, objects.calls)
}

func TestLoad_ObjectStoreNotConfigured(t *testing.T) {
	r := NewResolver(Options{})
	_, err := r.Load(context.Background(), "s3://art/wave.png", "")
	assert.ErrorContains(t, err, "no object storage")
}

func TestNewObjectStore_RequiresEndpoint(t *testing.T) {
	_, err := NewObjectStore(ObjectStoreConfig{})
	assert.Error(t, err)

	store, err := NewObjectStore(ObjectStoreConfig{Endpoint: "http://localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.NotNil(t, store)
}
