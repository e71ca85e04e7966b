package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
)

// VideoRepository defines the interface for video storage
type VideoRepository interface {
	List(ctx context.Context) ([]*model.Video, error)
	GetByID(ctx context.Context, id string) (*model.Video, error)
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, id string) error
}

// VideoService handles video business logic
type VideoService struct {
	repo VideoRepository
}

// NewVideoService creates a new video service
func NewVideoService(repo VideoRepository) *VideoService {
	return &VideoService{repo: repo}
}

// List returns all videos, newest first
func (s *VideoService) List(ctx context.Context) ([]*model.Video, error) {
	return s.repo.List(ctx)
}

// Get retrieves a video by ID
func (s *VideoService) Get(ctx context.Context, id string) (*model.Video, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// Create stores a new video. src must resolve to a YouTube video id.
func (s *VideoService) Create(ctx context.Context, req *model.CreateVideoRequest) (*model.Video, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	videoID, _ := model.YouTubeID(req.Src)
	video := &model.Video{
		Title:   req.Title,
		Src:     strings.TrimSpace(req.Src),
		VideoID: videoID,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Update merges the supplied fields into the stored video
func (s *VideoService) Update(ctx context.Context, id string, req *model.UpdateVideoRequest) (*model.Video, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	video, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Src != nil {
		video.Src = strings.TrimSpace(*req.Src)
		video.VideoID, _ = model.YouTubeID(video.Src)
	}

	if err := s.repo.Update(ctx, video); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// Delete removes a video
func (s *VideoService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	return nil
}
