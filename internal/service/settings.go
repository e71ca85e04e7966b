package service

import (
	"context"
	"log/slog"

	"github.com/fansite-cms/api/internal/blob"
	"github.com/fansite-cms/api/internal/model"
)

const settingsBlobPrefix = "settings"

// SettingsRepository defines the interface for settings storage
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Put(ctx context.Context, settings *model.Settings) error
}

// SettingsService reads and writes the singleton settings document. It
// holds no copy of the settings; every call goes to the repository.
type SettingsService struct {
	repo  SettingsRepository
	blobs blob.Store
}

// SettingsServiceConfig holds configuration for the settings service
type SettingsServiceConfig struct {
	Repo  SettingsRepository
	Blobs blob.Store
}

// NewSettingsService creates a new settings service
func NewSettingsService(cfg SettingsServiceConfig) *SettingsService {
	return &SettingsService{
		repo:  cfg.Repo,
		blobs: cfg.Blobs,
	}
}

// Get returns the stored settings or the defaults when none were saved
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return model.DefaultSettings(), nil
	}
	if settings.SNSLinks == nil {
		settings.SNSLinks = []model.SNSLink{}
	}
	return settings, nil
}

// Update applies a new banner image and/or SNS links. Concurrent updates
// are last-write-wins.
func (s *SettingsService) Update(ctx context.Context, req *model.UpdateSettingsRequest, banner File) (*model.Settings, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.SNSLinks != nil {
		links := make([]model.SNSLink, 0, len(req.SNSLinks))
		for _, l := range req.SNSLinks {
			if l.URL != "" {
				links = append(links, l)
			}
		}
		settings.SNSLinks = links
	}

	oldImage := settings.MainImage
	if banner != nil {
		url, err := storeFile(ctx, s.blobs, settingsBlobPrefix, banner)
		if err != nil {
			return nil, err
		}
		settings.MainImage = url
	}

	if err := s.repo.Put(ctx, settings); err != nil {
		if banner != nil {
			slog.Error("settings write failed after upload", slog.String("error", err.Error()))
			discardBlobs(ctx, s.blobs, settings.MainImage)
		}
		return nil, err
	}

	if banner != nil && oldImage != settings.MainImage {
		discardBlobs(ctx, s.blobs, oldImage)
	}
	return settings, nil
}
