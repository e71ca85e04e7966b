package handler

import (
	"context"
	"net/http"

	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/service"
	"github.com/fansite-cms/api/internal/upload"
)

// GalleryService is the gallery operations the handler needs
type GalleryService interface {
	List(ctx context.Context) ([]*model.GalleryImage, error)
	Get(ctx context.Context, id string) (*model.GalleryImage, error)
	CreateBatch(ctx context.Context, files []service.File) ([]*model.GalleryImage, error)
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, req *model.DeleteGalleryRequest) error
}

// GalleryHandler handles gallery requests
type GalleryHandler struct {
	svc GalleryService
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(svc GalleryService) *GalleryHandler {
	return &GalleryHandler{svc: svc}
}

// List handles GET /api/gallery
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, images)
}

// Get handles GET /api/gallery/{id}
func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	image, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, image)
}

// Upload handles POST /api/gallery with one or more "images" files
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(w, r, upload.GalleryImages.MaxTotalSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	defer func() { _ = form.Release() }()

	files, err := form.Files("images", upload.GalleryImages)
	if err != nil {
		handleError(w, r, err)
		return
	}

	images, err := h.svc.CreateBatch(r.Context(), asFiles(files))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusCreated, images)
}

// Delete handles DELETE /api/gallery/{id}
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "image deleted")
}

// DeleteBatch handles DELETE /api/gallery with body {"ids": [...]}
func (h *GalleryHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteGalleryRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := h.svc.DeleteBatch(r.Context(), &req); err != nil {
		handleError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "images deleted")
}
