package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fansite-cms/api/internal/blob"
	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

const albumBlobPrefix = "album"

// AlbumRepository defines the interface for album storage
type AlbumRepository interface {
	List(ctx context.Context) ([]*model.Album, error)
	GetByID(ctx context.Context, id string) (*model.Album, error)
	Create(ctx context.Context, album *model.Album) error
	Update(ctx context.Context, album *model.Album) error
	Delete(ctx context.Context, id string) error
}

// AlbumService handles discography business logic
type AlbumService struct {
	repo  AlbumRepository
	blobs blob.Store
}

// AlbumServiceConfig holds configuration for the album service
type AlbumServiceConfig struct {
	Repo  AlbumRepository
	Blobs blob.Store
}

// NewAlbumService creates a new album service
func NewAlbumService(cfg AlbumServiceConfig) *AlbumService {
	return &AlbumService{
		repo:  cfg.Repo,
		blobs: cfg.Blobs,
	}
}

// List returns all albums, newest release first
func (s *AlbumService) List(ctx context.Context) ([]*model.Album, error) {
	return s.repo.List(ctx)
}

// Get retrieves an album by ID
func (s *AlbumService) Get(ctx context.Context, id string) (*model.Album, error) {
	album, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

// Create validates the request, uploads the cover if one was sent and
// stores the album. cover may be nil.
func (s *AlbumService) Create(ctx context.Context, req *model.CreateAlbumRequest, cover File) (*model.Album, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	album := &model.Album{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Tracks:      nonNil(req.Tracks),
		VideoURL:    req.VideoURL,
	}

	if cover != nil {
		url, err := storeFile(ctx, s.blobs, albumBlobPrefix, cover)
		if err != nil {
			return nil, err
		}
		album.Image = url
	}

	if err := s.repo.Create(ctx, album); err != nil {
		if album.Image != "" {
			slog.Error("album write failed after upload", slog.String("error", err.Error()))
			discardBlobs(ctx, s.blobs, album.Image)
		}
		return nil, err
	}
	return album, nil
}

// Update merges the supplied fields into the stored album. A new cover
// replaces the old one, which is deleted after the write succeeds.
func (s *AlbumService) Update(ctx context.Context, id string, req *model.UpdateAlbumRequest, cover File) (*model.Album, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	album, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		album.Title = *req.Title
	}
	if req.Date != nil {
		album.Date = *req.Date
	}
	if req.Description != nil {
		album.Description = *req.Description
	}
	if req.Tracks != nil {
		album.Tracks = nonNil(*req.Tracks)
	}
	if req.VideoURL != nil {
		album.VideoURL = *req.VideoURL
	}

	oldImage := album.Image
	if cover != nil {
		url, err := storeFile(ctx, s.blobs, albumBlobPrefix, cover)
		if err != nil {
			return nil, err
		}
		album.Image = url
	}

	if err := s.repo.Update(ctx, album); err != nil {
		if cover != nil {
			discardBlobs(ctx, s.blobs, album.Image)
		}
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}

	if cover != nil && oldImage != album.Image {
		discardBlobs(ctx, s.blobs, oldImage)
	}
	return album, nil
}

// Delete removes the album and then its cover image
func (s *AlbumService) Delete(ctx context.Context, id string) error {
	album, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrAlbumNotFound
		}
		return err
	}

	discardBlobs(ctx, s.blobs, album.Image)
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
