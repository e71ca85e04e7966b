package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fansite-cms/api/internal/blob"
	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

const (
	galleryBlobPrefix = "gallery"

	// DefaultUploadConcurrency bounds parallel blob uploads per request.
	DefaultUploadConcurrency = 4
)

// GalleryRepository defines the interface for gallery storage
type GalleryRepository interface {
	List(ctx context.Context) ([]*model.GalleryImage, error)
	GetByID(ctx context.Context, id string) (*model.GalleryImage, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.GalleryImage, error)
	CreateMany(ctx context.Context, urls []string) ([]*model.GalleryImage, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

// GalleryService handles gallery business logic
type GalleryService struct {
	repo        GalleryRepository
	blobs       blob.Store
	concurrency int
}

// GalleryServiceConfig holds configuration for the gallery service
type GalleryServiceConfig struct {
	Repo        GalleryRepository
	Blobs       blob.Store
	Concurrency int
}

// NewGalleryService creates a new gallery service
func NewGalleryService(cfg GalleryServiceConfig) *GalleryService {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultUploadConcurrency
	}
	return &GalleryService{
		repo:        cfg.Repo,
		blobs:       cfg.Blobs,
		concurrency: concurrency,
	}
}

// List returns all images, newest first
func (s *GalleryService) List(ctx context.Context) ([]*model.GalleryImage, error) {
	return s.repo.List(ctx)
}

// Get retrieves one image by ID
func (s *GalleryService) Get(ctx context.Context, id string) (*model.GalleryImage, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrGalleryImageNotFound
	}
	return img, nil
}

// CreateBatch uploads all files in parallel and then stores one document
// per file in a single statement. If any upload or the write fails, the
// blobs already written are deleted and nothing is stored.
func (s *GalleryService) CreateBatch(ctx context.Context, files []File) ([]*model.GalleryImage, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > model.MaxGalleryBatch {
		return nil, invalidField("images", "too many images in one upload")
	}

	urls, err := storeFiles(ctx, s.blobs, galleryBlobPrefix, files, s.concurrency)
	if err != nil {
		return nil, err
	}

	images, err := s.repo.CreateMany(ctx, urls)
	if err != nil {
		slog.Error("gallery write failed after upload",
			slog.Int("count", len(urls)),
			slog.String("error", err.Error()))
		discardBlobs(ctx, s.blobs, urls...)
		return nil, err
	}
	return images, nil
}

// Delete removes one image and its blob
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	img, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrGalleryImageNotFound
		}
		return err
	}
	discardBlobs(ctx, s.blobs, img.URL)
	return nil
}

// DeleteBatch removes all ids atomically, then their blobs. If any id is
// unknown nothing is deleted.
func (s *GalleryService) DeleteBatch(ctx context.Context, req *model.DeleteGalleryRequest) error {
	if err := invalid(req.Validate()); err != nil {
		return err
	}

	ids := dedupe(req.IDs)
	images, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(images) != len(ids) {
		return ErrGalleryImageNotFound
	}

	if err := s.repo.DeleteMany(ctx, ids); err != nil {
		return err
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}

	discardBlobsBounded(ctx, s.blobs, urls, s.concurrency)
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
