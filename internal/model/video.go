package model

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

const MaxVideoTitleLength = 200

// Video is a YouTube video shown on the video page.
type Video struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Src       string    `json:"src"`
	VideoID   string    `json:"videoId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateVideoRequest is the body of POST /api/video.
type CreateVideoRequest struct {
	Title string `json:"title"`
	Src   string `json:"src"`
}

// Validate validates the create video request
func (r *CreateVideoRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxVideoTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title exceeds maximum length"})
	}
	if _, ok := YouTubeID(r.Src); !ok {
		errors = append(errors, FieldError{Field: "src", Message: "src must be a YouTube URL or video id"})
	}

	return errors
}

// UpdateVideoRequest is the body of PUT /api/video/{id}.
type UpdateVideoRequest struct {
	Title *string `json:"title,omitempty"`
	Src   *string `json:"src,omitempty"`
}

// Validate validates the update video request
func (r *UpdateVideoRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			errors = append(errors, FieldError{Field: "title", Message: "title cannot be empty"})
		} else if len(*r.Title) > MaxVideoTitleLength {
			errors = append(errors, FieldError{Field: "title", Message: "title exceeds maximum length"})
		}
	}
	if r.Src != nil {
		if _, ok := YouTubeID(*r.Src); !ok {
			errors = append(errors, FieldError{Field: "src", Message: "src must be a YouTube URL or video id"})
		}
	}

	return errors
}

var youTubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTubeID extracts the 11 character video id from a watch, youtu.be,
// embed, shorts or live URL, or accepts a bare id.
func YouTubeID(src string) (string, bool) {
	src = strings.TrimSpace(src)
	if youTubeIDPattern.MatchString(src) {
		return src, true
	}

	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0]
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com":
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		switch {
		case len(segments) == 1 && segments[0] == "watch":
			id = u.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live" || segments[0] == "v"):
			id = segments[1]
		}
	}

	if !youTubeIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}
