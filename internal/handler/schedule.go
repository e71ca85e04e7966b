package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/fansite-cms/api/internal/model"
)

// ScheduleService is the schedule operations the handler needs
type ScheduleService interface {
	Get(ctx context.Context, id string) (*model.ScheduleEvent, error)
	Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.ScheduleEvent, error)
	Update(ctx context.Context, id string, req *model.UpdateScheduleRequest) (*model.ScheduleEvent, error)
	Delete(ctx context.Context, id string) error
	ParseRange(start, end string) (time.Time, time.Time, error)
	Calendar(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error)
}

// ScheduleHandler serves the merged calendar and schedule CRUD
type ScheduleHandler struct {
	svc ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(svc ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// Calendar handles GET /api/schedule?start=&end= and returns stored events
// merged with the recurring ones in the range.
func (h *ScheduleHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, err := h.svc.ParseRange(q.Get("start"), q.Get("end"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	events, err := h.svc.Calendar(r.Context(), from, to)
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, events)
}

// Get handles GET /api/schedule/{id}. Only stored events have ids that
// resolve here.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, event)
}

// Create handles POST /api/schedule
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateScheduleRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	event, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusCreated, event)
}

// Update handles PUT /api/schedule/{id}
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateScheduleRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	event, err := h.svc.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, event)
}

// Delete handles DELETE /api/schedule/{id}
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "schedule event deleted")
}
