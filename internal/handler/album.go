package handler

import (
	"context"
	"net/http"

	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/service"
	"github.com/fansite-cms/api/internal/upload"
)

// AlbumService is the album operations the handler needs
type AlbumService interface {
	List(ctx context.Context) ([]*model.Album, error)
	Get(ctx context.Context, id string) (*model.Album, error)
	Create(ctx context.Context, req *model.CreateAlbumRequest, cover service.File) (*model.Album, error)
	Update(ctx context.Context, id string, req *model.UpdateAlbumRequest, cover service.File) (*model.Album, error)
	Delete(ctx context.Context, id string) error
}

// AlbumHandler handles discography requests
type AlbumHandler struct {
	svc AlbumService
}

// NewAlbumHandler creates a new album handler
func NewAlbumHandler(svc AlbumService) *AlbumHandler {
	return &AlbumHandler{svc: svc}
}

// List handles GET /api/album
func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	albums, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, albums)
}

// Get handles GET /api/album/{id}
func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	album, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, album)
}

// Create handles POST /api/album (multipart)
func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(w, r, upload.AlbumCover.MaxFileSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	defer func() { _ = form.Release() }()

	tracks, _, err := stringList(form, "tracks")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cover, err := form.File("image", upload.AlbumCover)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := &model.CreateAlbumRequest{
		Title:       form.Value("title"),
		Date:        form.Value("date"),
		Description: form.Value("description"),
		Tracks:      tracks,
		VideoURL:    form.Value("videoUrl"),
	}

	album, err := h.svc.Create(r.Context(), req, asFile(cover))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusCreated, album)
}

// Update handles PUT /api/album/{id} (multipart). Fields that are not sent
// keep their stored value.
func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(w, r, upload.AlbumCover.MaxFileSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	defer func() { _ = form.Release() }()

	req := &model.UpdateAlbumRequest{
		Title:       optionalString(form, "title"),
		Date:        optionalString(form, "date"),
		Description: optionalString(form, "description"),
		VideoURL:    optionalString(form, "videoUrl"),
	}
	tracks, sent, err := stringList(form, "tracks")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if sent {
		req.Tracks = &tracks
	}

	cover, err := form.File("image", upload.AlbumCover)
	if err != nil {
		handleError(w, r, err)
		return
	}

	album, err := h.svc.Update(r.Context(), r.PathValue("id"), req, asFile(cover))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, album)
}

// Delete handles DELETE /api/album/{id}
func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "album deleted")
}
