package handler

import (
	"context"
	"net/http"

	"github.com/fansite-cms/api/internal/model"
)

// VideoService is the video operations the handler needs
type VideoService interface {
	List(ctx context.Context) ([]*model.Video, error)
	Get(ctx context.Context, id string) (*model.Video, error)
	Create(ctx context.Context, req *model.CreateVideoRequest) (*model.Video, error)
	Update(ctx context.Context, id string, req *model.UpdateVideoRequest) (*model.Video, error)
	Delete(ctx context.Context, id string) error
}

type VideoHandler struct {
	svc VideoService
}

func NewVideoHandler(svc VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /api/video
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, videos)
}

// Get handles GET /api/video/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	video, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, video)
}

// Create handles POST /api/video
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVideoRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	video, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusCreated, video)
}

// Update handles PUT /api/video/{id}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateVideoRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	video, err := h.svc.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, video)
}

// Delete handles DELETE /api/video/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "video deleted")
}
