package recurrence

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fansite-cms/api/internal/model"
)

// IDPrefix starts every synthetic event id. Stored event ids never contain
// a colon, so the two id spaces cannot collide.
const IDPrefix = "recurring:"

// Rule is a yearly event on a fixed month and day. An occurrence exists in
// every year >= Since. "{n}" in Title expands to year - Since, and such
// counted rules start at Since+1 so there is no zeroth anniversary.
type Rule struct {
	ID    string             `yaml:"id"`
	Title string             `yaml:"title"`
	Type  model.ScheduleType `yaml:"type"`
	Month time.Month         `yaml:"month"`
	Day   int                `yaml:"day"`
	Since int                `yaml:"since"`
}

// Validate checks the rule can produce a date every year.
func (r Rule) Validate() error {
	if r.ID == "" || strings.Contains(r.ID, ":") {
		return fmt.Errorf("rule id %q must be non-empty and contain no colon", r.ID)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("rule %s: title is required", r.ID)
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("rule %s: unknown type %q", r.ID, r.Type)
	}
	if r.Month < time.January || r.Month > time.December {
		return fmt.Errorf("rule %s: month %d out of range", r.ID, r.Month)
	}
	// Year 2000 is a leap year, so Feb 29 passes here.
	if r.Day < 1 || time.Date(2000, r.Month, r.Day, 0, 0, 0, 0, time.UTC).Month() != r.Month {
		return fmt.Errorf("rule %s: day %d out of range for %s", r.ID, r.Day, r.Month)
	}
	if strings.Contains(r.Title, "{n}") && r.Since == 0 {
		return fmt.Errorf("rule %s: title uses {n} but since is not set", r.ID)
	}
	return nil
}

// DateIn returns the occurrence date in year at midnight in loc. Feb 29
// falls back to Feb 28 in non-leap years.
func (r Rule) DateIn(year int, loc *time.Location) time.Time {
	day := r.Day
	if r.Month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, r.Month, day, 0, 0, 0, 0, loc)
}

// FirstYear is the first year with an occurrence.
func (r Rule) FirstYear() int {
	if strings.Contains(r.Title, "{n}") {
		return r.Since + 1
	}
	return r.Since
}

// TitleIn expands the title for year.
func (r Rule) TitleIn(year int) string {
	return strings.ReplaceAll(r.Title, "{n}", strconv.Itoa(year-r.Since))
}

// EventID is the deterministic id of the occurrence on date.
func (r Rule) EventID(date time.Time) string {
	return IDPrefix + r.ID + ":" + date.Format(model.DateLayout)
}

// Rules is a set of yearly rules.
type Rules []Rule

// Occurrences returns every occurrence whose date falls within [from, to],
// both inclusive by calendar day in loc, ordered by date. Each occurrence
// is an all-day event with start == end.
func (rs Rules) Occurrences(from, to time.Time, loc *time.Location) []model.ScheduleEvent {
	events := []model.ScheduleEvent{}
	if len(rs) == 0 || to.Before(from) {
		return events
	}

	fromDay := midnight(from, loc)
	toDay := midnight(to, loc)

	for year := fromDay.Year(); year <= toDay.Year(); year++ {
		for _, r := range rs {
			if year < r.FirstYear() {
				continue
			}
			date := r.DateIn(year, loc)
			if date.Before(fromDay) || date.After(toDay) {
				continue
			}
			events = append(events, model.ScheduleEvent{
				ID:     r.EventID(date),
				Start:  date,
				End:    date,
				Type:   r.Type,
				Title:  r.TitleIn(year),
				AllDay: true,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
