// Package recurrence generates the yearly calendar dates (member birthdays
// and group anniversaries) that are computed at query time instead of being
// stored.
//
// Rules come from a YAML site file that also carries the profile roster:
//
//	site, err := recurrence.LoadSite(cfg.Site.File, cfg.Site.Timezone)
//	events := site.Rules.Occurrences(from, to, site.Location)
//
// Occurrences are pure functions of the rule and the requested range.
package recurrence
