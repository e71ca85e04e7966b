package handler

import (
	"context"
	"net/http"

	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/service"
	"github.com/fansite-cms/api/internal/upload"
)

// MemberService is the member profile operations the handler needs
type MemberService interface {
	List(ctx context.Context) ([]*model.MemberProfile, error)
	Get(ctx context.Context, id string) (*model.MemberProfile, error)
	Update(ctx context.Context, id string, req *model.UpdateMemberRequest, files []service.File) (*model.MemberProfile, error)
}

// MemberHandler handles member profile requests
type MemberHandler struct {
	svc MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(svc MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

// List handles GET /api/members in roster order
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, members)
}

// Get handles GET /api/members/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, member)
}

// Update handles PUT /api/members/{id}. texts, sns and existingImages are
// JSON-encoded form fields; new images arrive as "images" files.
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	rules := upload.MemberImages
	form, err := parseForm(w, r, rules.MaxFileSize*int64(rules.MaxFiles))
	if err != nil {
		handleError(w, r, err)
		return
	}
	defer func() { _ = form.Release() }()

	req := &model.UpdateMemberRequest{Name: optionalString(form, "name")}

	var texts []string
	if sent, err := jsonField(form, "texts", &texts); err != nil {
		handleError(w, r, err)
		return
	} else if sent {
		req.Texts = nonNilStrings(texts)
	}

	if _, err := jsonField(form, "sns", &req.SNS); err != nil {
		handleError(w, r, err)
		return
	}

	var existing []string
	if sent, err := jsonField(form, "existingImages", &existing); err != nil {
		handleError(w, r, err)
		return
	} else if sent {
		req.ExistingImages = nonNilStrings(existing)
	}

	files, err := form.Files("images", rules)
	if err != nil {
		handleError(w, r, err)
		return
	}

	member, err := h.svc.Update(r.Context(), r.PathValue("id"), req, asFiles(files))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, member)
}

// nonNilStrings distinguishes "sent an empty list" from "not sent".
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
