package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/recurrence"
)

// MaxCalendarYears bounds the span of one calendar query.
const MaxCalendarYears = 5

// ScheduleRepository defines the interface for schedule storage
type ScheduleRepository interface {
	List(ctx context.Context) ([]*model.ScheduleEvent, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*model.ScheduleEvent, error)
	GetByID(ctx context.Context, id string) (*model.ScheduleEvent, error)
	Create(ctx context.Context, event *model.ScheduleEvent) error
	Update(ctx context.Context, event *model.ScheduleEvent) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService handles calendar business logic
type ScheduleService struct {
	repo  ScheduleRepository
	rules recurrence.Rules
	loc   *time.Location
	now   func() time.Time
}

// ScheduleServiceConfig holds configuration for the schedule service
type ScheduleServiceConfig struct {
	Repo     ScheduleRepository
	Rules    recurrence.Rules
	Location *time.Location
	Now      func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(cfg ScheduleServiceConfig) *ScheduleService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		repo:  cfg.Repo,
		rules: cfg.Rules,
		loc:   loc,
		now:   now,
	}
}

// Location returns the site time zone used for date-only values.
func (s *ScheduleService) Location() *time.Location {
	return s.loc
}

// List returns all stored events, latest start first
func (s *ScheduleService) List(ctx context.Context) ([]*model.ScheduleEvent, error) {
	return s.repo.List(ctx)
}

// Get retrieves a stored event by ID. Recurring events are not addressable.
func (s *ScheduleService) Get(ctx context.Context, id string) (*model.ScheduleEvent, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrScheduleNotFound
	}
	return event, nil
}

// Create stores a new event
func (s *ScheduleService) Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.ScheduleEvent, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	start, err := model.ParseTime(req.Start, s.loc)
	if err != nil {
		return nil, invalidField("start", err.Error())
	}
	var end time.Time
	if req.End != "" {
		if end, err = model.ParseTime(req.End, s.loc); err != nil {
			return nil, invalidField("end", err.Error())
		}
	}
	if err := invalid(model.ValidateSpan(start, &end, req.AllDay)); err != nil {
		return nil, err
	}

	event := &model.ScheduleEvent{
		Start:  start,
		End:    end,
		Type:   req.Type,
		Title:  req.Title,
		AllDay: req.AllDay,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update merges the supplied fields into the stored event and re-checks
// the resulting span.
func (s *ScheduleService) Update(ctx context.Context, id string, req *model.UpdateScheduleRequest) (*model.ScheduleEvent, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Start != nil {
		oldStart := event.Start
		if event.Start, err = model.ParseTime(*req.Start, s.loc); err != nil {
			return nil, invalidField("start", err.Error())
		}
		// A moved all-day event keeps its length when end is not sent.
		if req.End == nil && event.AllDay && !event.End.IsZero() {
			event.End = event.End.Add(event.Start.Sub(oldStart))
		}
	}
	if req.End != nil {
		if *req.End == "" {
			event.End = time.Time{}
		} else if event.End, err = model.ParseTime(*req.End, s.loc); err != nil {
			return nil, invalidField("end", err.Error())
		}
	}
	if req.Type != nil {
		event.Type = *req.Type
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if err := invalid(model.ValidateSpan(event.Start, &event.End, event.AllDay)); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return event, nil
}

// Delete removes a stored event
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return nil
}

// ParseRange turns the start/end query parameters into a calendar range.
// Empty values default to the current calendar year in the site time zone.
func (s *ScheduleService) ParseRange(start, end string) (time.Time, time.Time, error) {
	year := s.now().In(s.loc).Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, s.loc)

	var err error
	if start != "" {
		if from, err = model.ParseTime(start, s.loc); err != nil {
			return time.Time{}, time.Time{}, invalidField("start", err.Error())
		}
	}
	if end != "" {
		if to, err = model.ParseTime(end, s.loc); err != nil {
			return time.Time{}, time.Time{}, invalidField("end", err.Error())
		}
	}
	return from, to, nil
}

// Calendar returns stored events overlapping [from, to] followed by the
// recurring occurrences in that range, stably sorted by start. A to value
// at local midnight covers that whole day. Entries with the same date are
// all kept.
func (s *ScheduleService) Calendar(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	if to.After(from.AddDate(MaxCalendarYears, 0, 0)) {
		return nil, ErrRangeTooLarge
	}

	until := to
	if local := to.In(s.loc); local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0 && local.Nanosecond() == 0 {
		until = local.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	stored, err := s.repo.ListRange(ctx, from, until)
	if err != nil {
		return nil, err
	}
	synthetic := s.rules.Occurrences(from, to, s.loc)

	events := make([]model.CalendarEvent, 0, len(stored)+len(synthetic))
	for _, e := range stored {
		events = append(events, model.CalendarEvent{ScheduleEvent: *e, Color: e.Type.Color()})
	}
	for _, e := range synthetic {
		events = append(events, model.CalendarEvent{ScheduleEvent: e, Recurring: true, Color: e.Type.Color()})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}
