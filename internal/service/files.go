package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fansite-cms/api/internal/blob"
	"golang.org/x/sync/errgroup"
)

// File is an uploaded file that has passed size and type checks.
type File interface {
	Name() string
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// storeFile uploads f under prefix and returns its public URL.
func storeFile(ctx context.Context, store blob.Store, prefix string, f File) (string, error) {
	body, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", f.Name(), err)
	}
	defer body.Close()

	url, err := store.Put(ctx, blob.Object{
		Name:        blob.ObjectName(prefix, f.Name(), f.ContentType()),
		ContentType: f.ContentType(),
		Size:        f.Size(),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("store upload %s: %w", f.Name(), err)
	}
	return url, nil
}

// storeFiles uploads files with at most limit uploads in flight and
// returns their URLs in input order. On failure every blob already written
// is deleted.
func storeFiles(ctx context.Context, store blob.Store, prefix string, files []File, limit int) ([]string, error) {
	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, f := range files {
		g.Go(func() error {
			url, err := storeFile(gctx, store, prefix, f)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		discardBlobs(ctx, store, urls...)
		return nil, err
	}
	return urls, nil
}

// cleanupTimeout bounds best-effort blob deletion after the request is done.
const cleanupTimeout = 30 * time.Second

// discardBlobs deletes urls best-effort. Failures are logged, never returned.
func discardBlobs(ctx context.Context, store blob.Store, urls ...string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := store.Delete(ctx, url); err != nil && !errors.Is(err, blob.ErrNotFound) {
			slog.Warn("failed to delete blob",
				slog.String("url", url),
				slog.String("error", err.Error()))
		}
	}
}

// discardBlobsBounded deletes urls best-effort with at most limit deletes
// in flight. It returns once every delete has finished.
func discardBlobsBounded(ctx context.Context, store blob.Store, urls []string, limit int) {
	var g errgroup.Group
	g.SetLimit(limit)
	for _, url := range urls {
		g.Go(func() error {
			discardBlobs(ctx, store, url)
			return nil
		})
	}
	_ = g.Wait()
}
