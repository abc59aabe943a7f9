// Package media stores user uploads in a blob bucket.
package media

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"ladx/config"
	"ladx/internal/domain/lifecycle"
	"ladx/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Register the bucket drivers usable via URL.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// blobStore is a MediaStore backed by a gocloud bucket.
type blobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params defines the parameters for the media store.
type Params struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

// NewBlobStore opens the configured bucket and closes it on shutdown.
func NewBlobStore(params Params) (service.MediaStore, error) {
	if params.Config.Media == nil || params.Config.Media.BucketURL == "" {
		return nil, errors.New("media bucket url must be provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "open media bucket")
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(params.Config.Media.PublicBaseURL, "/"),
	}, nil
}

// Upload stores the content under a generated key within the given folder.
func (s *blobStore) Upload(ctx context.Context, folder, filename, contentType string, content io.Reader) (*service.StoredObject, error) {
	key := path.Join(folder, uuid.New().String()+path.Ext(filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, "open bucket writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()
		// Remove the partial object so failed uploads leave nothing behind.
		_ = s.bucket.Delete(ctx, key)

		return nil, errors.Wrap(err, "write media object")
	}

	if err := writer.Close(); err != nil {
		_ = s.bucket.Delete(ctx, key)

		return nil, errors.Wrap(err, "close bucket writer")
	}

	return &service.StoredObject{
		URL: s.publicBaseURL + "/" + key,
		Key: key,
	}, nil
}

// Delete removes a previously uploaded object. Missing objects are ignored.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "delete media object")
	}

	return nil
}
