package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSConfig configures the Google Cloud Storage store.
type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	// PublicBaseURL defaults to https://storage.googleapis.com/<bucket>.
	PublicBaseURL string
	CacheControl  string
}

// GCSStore stores objects in a GCS bucket with public-read URLs.
type GCSStore struct {
	client       *storage.Client
	bucket       *storage.BucketHandle
	baseURL      string
	cacheControl string
}

// NewGCSStore opens a storage client. Credentials come from the file when
// set, otherwise from application default credentials.
func NewGCSStore(ctx context.Context, cfg GCSConfig) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = "https://storage.googleapis.com/" + cfg.Bucket
	}
	cache := cfg.CacheControl
	if cache == "" {
		cache = "public, max-age=31536000, immutable"
	}

	return &GCSStore{
		client:       client,
		bucket:       client.Bucket(cfg.Bucket),
		baseURL:      strings.TrimSuffix(base, "/"),
		cacheControl: cache,
	}, nil
}

// Put streams the object into the bucket.
func (s *GCSStore) Put(ctx context.Context, obj Object) (string, error) {
	w := s.bucket.Object(obj.Name).NewWriter(ctx)
	w.ContentType = obj.ContentType
	w.CacheControl = s.cacheControl

	if _, err := io.Copy(w, obj.Body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", obj.Name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", obj.Name, err)
	}

	return s.baseURL + "/" + obj.Name, nil
}

// Delete removes the object behind url.
func (s *GCSStore) Delete(ctx context.Context, url string) error {
	name, err := nameFromURL(s.baseURL, url)
	if err != nil {
		return err
	}

	err = s.bucket.Object(name).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrNotFound
	}
	return err
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
