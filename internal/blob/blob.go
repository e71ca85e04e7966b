package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates the object does not exist.
	ErrNotFound = errors.New("blob not found")

	// ErrForeignURL indicates a URL that does not belong to this store.
	ErrForeignURL = errors.New("url does not belong to this blob store")
)

// Object is an upload handed to a Store.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store persists uploaded files and serves them from public URLs.
type Store interface {
	// Put writes the object and returns its public URL.
	Put(ctx context.Context, obj Object) (string, error)

	// Delete removes the object behind a URL previously returned by Put.
	Delete(ctx context.Context, url string) error
}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectName returns a collision-free object name under prefix, keeping a
// sensible extension for the content type.
func ObjectName(prefix, filename, contentType string) string {
	ext, ok := extByType[contentType]
	if !ok {
		ext = strings.ToLower(path.Ext(filename))
	}
	return path.Join(prefix, uuid.NewString()+ext)
}

// nameFromURL strips base from url and returns the object name.
func nameFromURL(base, url string) (string, error) {
	base = strings.TrimSuffix(base, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return "", ErrForeignURL
	}
	name := strings.TrimPrefix(url, base)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	clean := path.Clean("/" + name)[1:]
	if clean == "" || clean != name {
		return "", ErrForeignURL
	}
	return clean, nil
}
