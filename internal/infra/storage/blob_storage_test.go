package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"blog/config"
	domainerrors "blog/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_SaveAndOpen(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobStorage(bucket)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "cover.png", "image/png", strings.NewReader("png-bytes")))

	img, err := store.Open(ctx, "cover.png")
	require.NoError(t, err)
	defer img.Body.Close()

	body, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, int64(len("png-bytes")), img.Size)
}

func TestBlobStorage_OpenMissing(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	_, err := NewBlobStorage(bucket).Open(context.Background(), "missing.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUploadNotFound))
}

func TestNew_OpensConfiguredBucket(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{Storage: &config.StorageConfig{BucketURL: "file://" + t.TempDir()}}

	store, err := New(Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "a.gif", "image/gif", strings.NewReader("gif")))
	img, err := store.Open(ctx, "a.gif")
	require.NoError(t, err)
	require.NoError(t, img.Body.Close())

	lc.RequireStart().RequireStop()
}

func TestNew_UnknownScheme(t *testing.T) {
	_, err := New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    &config.Config{Storage: &config.StorageConfig{BucketURL: "ftp://nowhere"}},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}
