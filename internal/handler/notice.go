package handler

import (
	"context"
	"net/http"

	"github.com/fansite-cms/api/internal/model"
)

// NoticeService is the notice operations the handler needs
type NoticeService interface {
	List(ctx context.Context) ([]*model.Notice, error)
	Get(ctx context.Context, id string) (*model.Notice, error)
	Create(ctx context.Context, req *model.CreateNoticeRequest) (*model.Notice, error)
	Update(ctx context.Context, id string, req *model.UpdateNoticeRequest) (*model.Notice, error)
	Delete(ctx context.Context, id string) error
}

// NoticeHandler handles notice requests
type NoticeHandler struct {
	svc NoticeService
}

// NewNoticeHandler creates a new notice handler
func NewNoticeHandler(svc NoticeService) *NoticeHandler {
	return &NoticeHandler{svc: svc}
}

// List handles GET /api/notice
func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	notices, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, notices)
}

// Get handles GET /api/notice/{id}
func (h *NoticeHandler) Get(w http.ResponseWriter, r *http.Request) {
	notice, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, notice)
}

// Create handles POST /api/notice
func (h *NoticeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNoticeRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	notice, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusCreated, notice)
}

// Update handles PUT /api/notice/{id}
func (h *NoticeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateNoticeRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	notice, err := h.svc.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, notice)
}

// Delete handles DELETE /api/notice/{id}
func (h *NoticeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "notice deleted")
}
