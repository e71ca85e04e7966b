package service

import (
	"context"
	"errors"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/security"
)

// NoticeRepository defines the interface for notice storage
type NoticeRepository interface {
	List(ctx context.Context) ([]*model.Notice, error)
	GetByID(ctx context.Context, id string) (*model.Notice, error)
	Create(ctx context.Context, notice *model.Notice) error
	Update(ctx context.Context, notice *model.Notice) error
	Delete(ctx context.Context, id string) error
}

// NoticeService handles notice business logic
type NoticeService struct {
	repo      NoticeRepository
	sanitizer security.HTMLSanitizer
}

// NoticeServiceConfig holds configuration for the notice service
type NoticeServiceConfig struct {
	Repo      NoticeRepository
	Sanitizer security.HTMLSanitizer
}

// NewNoticeService creates a new notice service
func NewNoticeService(cfg NoticeServiceConfig) *NoticeService {
	sanitizer := cfg.Sanitizer
	if sanitizer == nil {
		sanitizer = security.NewNoticeSanitizer()
	}
	return &NoticeService{
		repo:      cfg.Repo,
		sanitizer: sanitizer,
	}
}

// List returns all notices, newest first
func (s *NoticeService) List(ctx context.Context) ([]*model.Notice, error) {
	return s.repo.List(ctx)
}

// Get retrieves a notice by ID
func (s *NoticeService) Get(ctx context.Context, id string) (*model.Notice, error) {
	notice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, ErrNoticeNotFound
	}
	return notice, nil
}

// Create sanitizes the content and stores a new notice. Type defaults to 공지.
func (s *NoticeService) Create(ctx context.Context, req *model.CreateNoticeRequest) (*model.Notice, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	noticeType := req.Type
	if noticeType == "" {
		noticeType = model.NoticeTypeNotice
	}

	notice := &model.Notice{
		Type:    noticeType,
		Title:   req.Title,
		Content: s.sanitizer.Sanitize(req.Content),
	}
	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// Update merges the supplied fields into the stored notice
func (s *NoticeService) Update(ctx context.Context, id string, req *model.UpdateNoticeRequest) (*model.Notice, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	notice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		notice.Type = *req.Type
	}
	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Content != nil {
		notice.Content = s.sanitizer.Sanitize(*req.Content)
	}

	if err := s.repo.Update(ctx, notice); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return notice, nil
}

// Delete removes a notice
func (s *NoticeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}
	return nil
}
