package model

import (
	"fmt"
	"strings"
	"time"
)

// ScheduleType categorizes calendar events.
type ScheduleType string

const (
	ScheduleTypeBirthday ScheduleType = "Birthday"
	ScheduleTypeConcert  ScheduleType = "Concert"
	ScheduleTypeEvent    ScheduleType = "Event"
)

// IsValid checks if the schedule type is known
func (t ScheduleType) IsValid() bool {
	switch t {
	case ScheduleTypeBirthday, ScheduleTypeConcert, ScheduleTypeEvent:
		return true
	}
	return false
}

// Color is the calendar color used to render events of this type.
func (t ScheduleType) Color() string {
	switch t {
	case ScheduleTypeBirthday:
		return "#f472b6"
	case ScheduleTypeConcert:
		return "#60a5fa"
	default:
		return "#34d399"
	}
}

const MaxScheduleTitleLength = 200

// ScheduleEvent is a calendar entry stored by an admin.
type ScheduleEvent struct {
	ID     string       `json:"id"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Type   ScheduleType `json:"type"`
	Title  string       `json:"title"`
	AllDay bool         `json:"allDay"`
}

// CalendarEvent is an entry of the merged schedule view.
type CalendarEvent struct {
	ScheduleEvent
	Recurring bool   `json:"recurring"`
	Color     string `json:"color"`
}

// CreateScheduleRequest is the body of POST /api/schedule. Start and End
// accept YYYY-MM-DD or RFC3339.
type CreateScheduleRequest struct {
	Start  string       `json:"start"`
	End    string       `json:"end,omitempty"`
	Type   ScheduleType `json:"type"`
	Title  string       `json:"title"`
	AllDay bool         `json:"allDay"`
}

// Validate checks the fields that do not depend on the site time zone.
func (r *CreateScheduleRequest) Validate() []FieldError {
	var errors []FieldError

	if !r.Type.IsValid() {
		errors = append(errors, FieldError{Field: "type", Message: "type must be Birthday, Concert or Event"})
	}
	errors = append(errors, validateScheduleTitle(r.Title)...)
	if r.Start == "" {
		errors = append(errors, FieldError{Field: "start", Message: "start is required"})
	}
	if r.End == "" && !r.AllDay {
		errors = append(errors, FieldError{Field: "end", Message: "end is required unless allDay"})
	}

	return errors
}

// UpdateScheduleRequest is the body of PUT /api/schedule/{id}.
type UpdateScheduleRequest struct {
	Start  *string       `json:"start,omitempty"`
	End    *string       `json:"end,omitempty"`
	Type   *ScheduleType `json:"type,omitempty"`
	Title  *string       `json:"title,omitempty"`
	AllDay *bool         `json:"allDay,omitempty"`
}

// Validate validates the update schedule request
func (r *UpdateScheduleRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Type != nil && !r.Type.IsValid() {
		errors = append(errors, FieldError{Field: "type", Message: "type must be Birthday, Concert or Event"})
	}
	if r.Title != nil {
		errors = append(errors, validateScheduleTitle(*r.Title)...)
	}
	if r.Start != nil && *r.Start == "" {
		errors = append(errors, FieldError{Field: "start", Message: "start cannot be empty"})
	}

	return errors
}

// ValidateSpan enforces end >= start for timed events. All-day events with
// a zero or earlier end are normalized to end = start.
func ValidateSpan(start time.Time, end *time.Time, allDay bool) []FieldError {
	if allDay {
		if end.IsZero() || end.Before(start) {
			*end = start
		}
		return nil
	}
	if end.IsZero() {
		return []FieldError{{Field: "end", Message: "end is required unless allDay"}}
	}
	if end.Before(start) {
		return []FieldError{{Field: "end", Message: "end must be at or after start"}}
	}
	return nil
}

// ParseTime accepts YYYY-MM-DD (midnight in loc) or RFC3339.
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: expected YYYY-MM-DD or RFC3339", value)
}

func validateScheduleTitle(title string) []FieldError {
	if strings.TrimSpace(title) == "" {
		return []FieldError{{Field: "title", Message: "title is required"}}
	}
	if len(title) > MaxScheduleTitleLength {
		return []FieldError{{Field: "title", Message: "title exceeds maximum length"}}
	}
	return nil
}
