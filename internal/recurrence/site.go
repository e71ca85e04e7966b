package recurrence

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/fansite-cms/api/internal/model"
)

//go:embed default_site.yaml
var defaultSite []byte

// Member is one roster entry from the site file.
type Member struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Birthday string `yaml:"birthday"`
}

// Site is the static description of the group: time zone, roster and the
// yearly dates shown on the calendar.
type Site struct {
	Location  *time.Location
	GroupName string
	Members   []Member
	Rules     Rules
}

type siteFile struct {
	Timezone      string   `yaml:"timezone"`
	GroupName     string   `yaml:"group_name"`
	Members       []Member `yaml:"members"`
	Anniversaries []Rule   `yaml:"anniversaries"`
}

// LoadSite reads the site file at path, or the built-in default when path
// is empty. A non-empty timezone overrides the file's.
func LoadSite(path, timezone string) (*Site, error) {
	data := defaultSite
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read site file: %w", err)
		}
	}

	site, err := ParseSite(data)
	if err != nil {
		return nil, err
	}
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
		}
		site.Location = loc
	}
	return site, nil
}

// ParseSite decodes and validates a site file. Member birthdays become
// Birthday rules anchored to the birth year.
func ParseSite(data []byte) (*Site, error) {
	var f siteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse site file: %w", err)
	}

	tz := f.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}

	site := &Site{
		Location:  loc,
		GroupName: f.GroupName,
		Members:   f.Members,
	}
	if site.GroupName == "" {
		site.GroupName = model.AllMembersID
	}

	seen := map[string]bool{model.AllMembersID: true}
	for _, m := range f.Members {
		if m.ID == "" || strings.ContainsAny(m.ID, ":/ ") {
			return nil, fmt.Errorf("member id %q is invalid", m.ID)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("member id %q is duplicated", m.ID)
		}
		seen[m.ID] = true

		if m.Birthday == "" {
			continue
		}
		born, err := time.Parse(model.DateLayout, m.Birthday)
		if err != nil {
			return nil, fmt.Errorf("member %s: birthday must be YYYY-MM-DD", m.ID)
		}
		site.Rules = append(site.Rules, Rule{
			ID:    "birthday-" + m.ID,
			Title: m.Name + " 생일",
			Type:  model.ScheduleTypeBirthday,
			Month: born.Month(),
			Day:   born.Day(),
			Since: born.Year(),
		})
	}
	site.Rules = append(site.Rules, f.Anniversaries...)

	ruleIDs := map[string]bool{}
	for _, r := range site.Rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if ruleIDs[r.ID] {
			return nil, fmt.Errorf("rule id %q is duplicated", r.ID)
		}
		ruleIDs[r.ID] = true
	}

	return site, nil
}

// RosterEntry is an id and display name of a profile page.
type RosterEntry struct {
	ID   string
	Name string
}

// Roster lists the group entry followed by the members in file order.
func (s *Site) Roster() []RosterEntry {
	roster := make([]RosterEntry, 0, len(s.Members)+1)
	roster = append(roster, RosterEntry{ID: model.AllMembersID, Name: s.GroupName})
	for _, m := range s.Members {
		roster = append(roster, RosterEntry{ID: m.ID, Name: m.Name})
	}
	return roster
}

// Lookup returns the roster entry for id.
func (s *Site) Lookup(id string) (RosterEntry, bool) {
	for _, e := range s.Roster() {
		if e.ID == id {
			return e, true
		}
	}
	return RosterEntry{}, false
}
