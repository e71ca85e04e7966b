package model

import "time"

// MaxGalleryBatch bounds how many images one upload or delete request may carry.
const MaxGalleryBatch = 50

// GalleryImage is one photo in the gallery.
type GalleryImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeleteGalleryRequest is the body of DELETE /api/gallery.
type DeleteGalleryRequest struct {
	IDs []string `json:"ids"`
}

// Validate validates the batch delete request
func (r *DeleteGalleryRequest) Validate() []FieldError {
	if len(r.IDs) == 0 {
		return []FieldError{{Field: "ids", Message: "at least one id is required"}}
	}
	if len(r.IDs) > MaxGalleryBatch {
		return []FieldError{{Field: "ids", Message: "too many ids"}}
	}
	for _, id := range r.IDs {
		if id == "" {
			return []FieldError{{Field: "ids", Message: "ids cannot be empty"}}
		}
	}
	return nil
}
