package model

import "strings"

// AllMembersID is the roster entry describing the group as a whole.
const AllMembersID = "All"

const (
	MaxMemberImages     = 10
	MaxMemberTexts      = 20
	MaxMemberTextLength = 5000
)

// SNSPlatforms is the fixed set of SNS link keys.
var SNSPlatforms = []string{"instagram", "x", "youtube", "tiktok", "weverse", "fancafe"}

// IsSNSPlatform reports whether key is one of SNSPlatforms.
func IsSNSPlatform(key string) bool {
	for _, p := range SNSPlatforms {
		if p == key {
			return true
		}
	}
	return false
}

// MemberProfile is the profile page content for one roster entry.
type MemberProfile struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Texts  []string          `json:"texts"`
	Images []string          `json:"images"`
	SNS    map[string]string `json:"sns"`
}

// UpdateMemberRequest carries the form fields of PUT /api/members/{id}.
// Nil fields are left unchanged. ExistingImages lists the stored image URLs
// to keep; images not listed are dropped.
type UpdateMemberRequest struct {
	Name           *string
	Texts          []string
	SNS            map[string]string
	ExistingImages []string
}

// Validate validates the update member request
func (r *UpdateMemberRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name cannot be empty"})
	}
	if len(r.Texts) > MaxMemberTexts {
		errors = append(errors, FieldError{Field: "texts", Message: "too many text blocks"})
	}
	for _, t := range r.Texts {
		if len(t) > MaxMemberTextLength {
			errors = append(errors, FieldError{Field: "texts", Message: "text block exceeds maximum length"})
			break
		}
	}
	errors = append(errors, validateSNSMap(r.SNS)...)
	if len(r.ExistingImages) > MaxMemberImages {
		errors = append(errors, FieldError{Field: "existingImages", Message: "too many images"})
	}

	return errors
}

func validateSNSMap(sns map[string]string) []FieldError {
	var errors []FieldError
	for platform, link := range sns {
		if !IsSNSPlatform(platform) {
			errors = append(errors, FieldError{Field: "sns." + platform, Message: "unknown SNS platform"})
			continue
		}
		if link != "" && !IsHTTPURL(link) {
			errors = append(errors, FieldError{Field: "sns." + platform, Message: "link must be an http(s) URL"})
		}
	}
	return errors
}
