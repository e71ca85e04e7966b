package model

// SettingsID is the record key of the singleton settings document.
const SettingsID = "main"

// SNSLink is one footer SNS link.
type SNSLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Settings is the site-wide settings document.
type Settings struct {
	MainImage string    `json:"mainImage"`
	SNSLinks  []SNSLink `json:"snsLinks"`
}

// DefaultSettings is returned before an admin has saved anything.
func DefaultSettings() *Settings {
	return &Settings{SNSLinks: []SNSLink{}}
}

// UpdateSettingsRequest carries the form fields of POST /api/settings.
// A nil SNSLinks keeps the stored links.
type UpdateSettingsRequest struct {
	SNSLinks []SNSLink
}

// Validate validates the update settings request
func (r *UpdateSettingsRequest) Validate() []FieldError {
	var errors []FieldError
	seen := make(map[string]bool, len(r.SNSLinks))
	for _, l := range r.SNSLinks {
		if !IsSNSPlatform(l.ID) {
			errors = append(errors, FieldError{Field: "snsLinks", Message: "unknown SNS platform " + l.ID})
			continue
		}
		if seen[l.ID] {
			errors = append(errors, FieldError{Field: "snsLinks", Message: "duplicate SNS platform " + l.ID})
			continue
		}
		seen[l.ID] = true
		if l.URL != "" && !IsHTTPURL(l.URL) {
			errors = append(errors, FieldError{Field: "snsLinks", Message: "link for " + l.ID + " must be an http(s) URL"})
		}
	}
	return errors
}
