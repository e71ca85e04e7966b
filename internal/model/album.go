package model

import (
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates such as an album's release date.
const DateLayout = "2006-01-02"

const (
	MaxAlbumTitleLength = 200
	MaxAlbumTracks      = 100
)

// Album is one discography entry.
type Album struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description,omitempty"`
	Tracks      []string `json:"tracks"`
	VideoURL    string   `json:"videoUrl,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// CreateAlbumRequest is the form part of POST /api/album. The cover image
// travels separately as a file.
type CreateAlbumRequest struct {
	Title       string
	Date        string
	Description string
	Tracks      []string
	VideoURL    string
}

// Validate validates the create album request
func (r *CreateAlbumRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxAlbumTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title exceeds maximum length"})
	}

	errors = append(errors, validateDate("date", r.Date)...)
	errors = append(errors, validateTracks(r.Tracks)...)

	if r.VideoURL != "" && !IsHTTPURL(r.VideoURL) {
		errors = append(errors, FieldError{Field: "videoUrl", Message: "videoUrl must be an http(s) URL"})
	}

	return errors
}

// UpdateAlbumRequest carries the fields an admin changed. Nil means unchanged.
type UpdateAlbumRequest struct {
	Title       *string
	Date        *string
	Description *string
	Tracks      *[]string
	VideoURL    *string
}

// Validate validates the update album request
func (r *UpdateAlbumRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			errors = append(errors, FieldError{Field: "title", Message: "title cannot be empty"})
		} else if len(*r.Title) > MaxAlbumTitleLength {
			errors = append(errors, FieldError{Field: "title", Message: "title exceeds maximum length"})
		}
	}
	if r.Date != nil {
		errors = append(errors, validateDate("date", *r.Date)...)
	}
	if r.Tracks != nil {
		errors = append(errors, validateTracks(*r.Tracks)...)
	}
	if r.VideoURL != nil && *r.VideoURL != "" && !IsHTTPURL(*r.VideoURL) {
		errors = append(errors, FieldError{Field: "videoUrl", Message: "videoUrl must be an http(s) URL"})
	}

	return errors
}

func validateDate(field, value string) []FieldError {
	if value == "" {
		return []FieldError{{Field: field, Message: field + " is required"}}
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return []FieldError{{Field: field, Message: field + " must be YYYY-MM-DD"}}
	}
	return nil
}

func validateTracks(tracks []string) []FieldError {
	if len(tracks) > MaxAlbumTracks {
		return []FieldError{{Field: "tracks", Message: "too many tracks"}}
	}
	for _, t := range tracks {
		if strings.TrimSpace(t) == "" {
			return []FieldError{{Field: "tracks", Message: "tracks cannot contain empty titles"}}
		}
	}
	return nil
}
