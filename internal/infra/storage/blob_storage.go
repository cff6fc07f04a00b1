// Package storage keeps uploaded files in a gocloud.dev bucket.
package storage

import (
	"context"
	"io"
	"log/slog"

	"blog/config"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/lifecycle"
	"blog/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/azureblob" // azblob:// buckets
	_ "gocloud.dev/blob/fileblob"  // file:// buckets
	_ "gocloud.dev/blob/gcsblob"   // gs:// buckets
	_ "gocloud.dev/blob/memblob"   // mem:// buckets
	_ "gocloud.dev/blob/s3blob"    // s3:// buckets
	"gocloud.dev/gcerrors"
)

const defaultBucketURL = "mem://"

type blobStorage struct {
	bucket *blob.Bucket
}

// Params defines the dependencies of the image storage
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and closes it when the application stops.
func New(params Params) (service.ImageStorage, error) {
	bucketURL := defaultBucketURL
	if params.Config.Storage != nil && params.Config.Storage.BucketURL != "" {
		bucketURL = params.Config.Storage.BucketURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Logger.Info("Upload bucket opened", slog.String("bucket", bucketURL))

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewBlobStorage(bucket), nil
}

// NewBlobStorage wraps an already opened bucket.
func NewBlobStorage(bucket *blob.Bucket) service.ImageStorage {
	return &blobStorage{bucket: bucket}
}

// Save streams r into the bucket under key.
func (s *blobStorage) Save(ctx context.Context, key, contentType string, r io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "failed to open blob writer")
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()

		return errors.Wrap(err, "failed to write blob")
	}

	return errors.Wrap(w.Close(), "failed to commit blob")
}

// Open returns a reader for key.
func (s *blobStorage) Open(ctx context.Context, key string) (*service.StoredImage, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrUploadNotFound
		}

		return nil, errors.Wrap(err, "failed to open blob")
	}

	return &service.StoredImage{
		Body:        r,
		ContentType: r.ContentType(),
		Size:        r.Size(),
	}, nil
}
