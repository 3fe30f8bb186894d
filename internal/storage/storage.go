// Package storage provides read-only access to the bucket holding the
// default documents: existence checks and time-limited signed download URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
)

// ObjectStore answers whether an object exists and mints signed download
// URLs for it. A signed URL is generated fresh per request, never persisted,
// and expires automatically - possession of the URL is the only access
// control after issuance.
type ObjectStore interface {
	Exists(ctx context.Context, object string) (bool, error)
	SignedURL(object string, expires time.Time) (string, error)
}

// GCSStore is the Cloud Storage implementation of ObjectStore.
type GCSStore struct {
	bucket *gcs.BucketHandle
}

// NewGCSStore wraps one bucket of an existing Cloud Storage client.
// The client is owned by the caller.
func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{
		bucket: client.Bucket(bucket),
	}
}

// Exists reports whether the object is present in the bucket.
func (s *GCSStore) Exists(ctx context.Context, object string) (bool, error) {
	_, err := s.bucket.Object(object).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %s: %w", object, err)
	}
	return true, nil
}

// SignedURL returns a V4 read-scoped URL for the object, valid until expires.
func (s *GCSStore) SignedURL(object string, expires time.Time) (string, error) {
	url, err := s.bucket.SignedURL(object, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: expires,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for object %s: %w", object, err)
	}
	return url, nil
}
