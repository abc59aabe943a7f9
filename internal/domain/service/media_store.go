package service

import (
	"context"
	"io"
)

// StoredObject identifies an uploaded blob.
type StoredObject struct {
	URL string
	Key string
}

// MediaStore persists user-uploaded files (package images, KYC documents)
// in a blob bucket.
type MediaStore interface {
	// Upload stores the content under a generated key within the given
	// folder and returns its public URL and key.
	Upload(ctx context.Context, folder, filename, contentType string, content io.Reader) (*StoredObject, error)

	// Delete removes a previously uploaded object by key. Deleting a
	// missing object is not an error.
	Delete(ctx context.Context, key string) error
}
