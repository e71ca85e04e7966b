package service

import (
	"errors"

	"github.com/fansite-cms/api/internal/model"
)

// Centralized service layer errors.
// Handlers map these to HTTP statuses in one place.

// ===== Not Found Errors =====
var (
	ErrAlbumNotFound        = errors.New("album not found")
	ErrGalleryImageNotFound = errors.New("gallery image not found")
	ErrNoticeNotFound       = errors.New("notice not found")
	ErrScheduleNotFound     = errors.New("schedule event not found")
	ErrVideoNotFound        = errors.New("video not found")
	ErrMemberNotFound       = errors.New("member not found")
)

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ===== Schedule Errors =====
var (
	ErrInvalidRange  = errors.New("invalid date range")
	ErrRangeTooLarge = errors.New("date range exceeds five years")
)

// ===== Upload Errors =====
var (
	ErrNoFiles       = errors.New("no files uploaded")
	ErrTooManyImages = errors.New("too many images")
)

// ValidationError carries the field problems of a rejected request.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Fields[0].Field + ": " + e.Fields[0].Message
}

func invalid(fields []model.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func invalidField(field, message string) error {
	return &ValidationError{Fields: []model.FieldError{{Field: field, Message: message}}}
}
