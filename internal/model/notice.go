package model

import (
	"strings"
	"time"
)

// NoticeType distinguishes announcements from event posts.
type NoticeType string

const (
	NoticeTypeNotice NoticeType = "공지"
	NoticeTypeEvent  NoticeType = "이벤트"
)

// IsValid checks if the notice type is known
func (t NoticeType) IsValid() bool {
	return t == NoticeTypeNotice || t == NoticeTypeEvent
}

const (
	MaxNoticeTitleLength   = 200
	MaxNoticeContentLength = 200000
)

// Notice is an announcement. Content is sanitized HTML.
type Notice struct {
	ID        string     `json:"id"`
	Type      NoticeType `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CreateNoticeRequest is the body of POST /api/notice.
type CreateNoticeRequest struct {
	Type    NoticeType `json:"type"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
}

// Validate validates the create notice request
func (r *CreateNoticeRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Type != "" && !r.Type.IsValid() {
		errors = append(errors, FieldError{Field: "type", Message: "type must be 공지 or 이벤트"})
	}
	errors = append(errors, validateNoticeTitle(r.Title)...)
	if len(r.Content) > MaxNoticeContentLength {
		errors = append(errors, FieldError{Field: "content", Message: "content exceeds maximum length"})
	}

	return errors
}

// UpdateNoticeRequest is the body of PUT /api/notice/{id}.
type UpdateNoticeRequest struct {
	Type    *NoticeType `json:"type,omitempty"`
	Title   *string     `json:"title,omitempty"`
	Content *string     `json:"content,omitempty"`
}

// Validate validates the update notice request
func (r *UpdateNoticeRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Type != nil && !r.Type.IsValid() {
		errors = append(errors, FieldError{Field: "type", Message: "type must be 공지 or 이벤트"})
	}
	if r.Title != nil {
		errors = append(errors, validateNoticeTitle(*r.Title)...)
	}
	if r.Content != nil && len(*r.Content) > MaxNoticeContentLength {
		errors = append(errors, FieldError{Field: "content", Message: "content exceeds maximum length"})
	}

	return errors
}

func validateNoticeTitle(title string) []FieldError {
	if strings.TrimSpace(title) == "" {
		return []FieldError{{Field: "title", Message: "title is required"}}
	}
	if len(title) > MaxNoticeTitleLength {
		return []FieldError{{Field: "title", Message: "title exceeds maximum length"}}
	}
	return nil
}
