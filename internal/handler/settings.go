package handler

import (
	"context"
	"net/http"

	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/service"
	"github.com/fansite-cms/api/internal/upload"
)

// SettingsService is the site settings operations the handler needs
type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, req *model.UpdateSettingsRequest, banner service.File) (*model.Settings, error)
}

// SettingsHandler handles the singleton settings document
type SettingsHandler struct {
	svc SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, settings)
}

// Update handles POST /api/settings with an optional "image" banner and a
// JSON-encoded "snsLinks" field.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(w, r, upload.SettingsBanner.MaxFileSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	defer func() { _ = form.Release() }()

	req := &model.UpdateSettingsRequest{}
	var links []model.SNSLink
	if sent, err := jsonField(form, "snsLinks", &links); err != nil {
		handleError(w, r, err)
		return
	} else if sent {
		if links == nil {
			links = []model.SNSLink{}
		}
		req.SNSLinks = links
	}

	banner, err := form.File("image", upload.SettingsBanner)
	if err != nil {
		handleError(w, r, err)
		return
	}

	settings, err := h.svc.Update(r.Context(), req, asFile(banner))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, settings)
}
