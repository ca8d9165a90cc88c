package differ

import (
	"sort"

	"matchwatch/internal/models"

	"github.com/rs/zerolog"
)

// Differ compares a freshly assembled snapshot against the previously
// persisted one and produces the change report that decides whether state
// must be written.
type Differ struct {
	logger zerolog.Logger
}

// NewDiffer creates a new Differ.
func NewDiffer(logger zerolog.Logger) *Differ {
	return &Differ{
		logger: logger.With().Str("component", "Differ").Logger(),
	}
}

// Diff reports the changes in current relative to previous.
//
// A nil previous snapshot is first-run semantics: the report says changes
// exist (the snapshot must be persisted) but enumerates nothing, since
// there is no baseline to compare against. Teams present only in previous
// are not reported; a team that disappeared simply has no current-season
// matches.
func (d *Differ) Diff(previous, current *models.ClubSnapshot) models.ChangeReport {
	report := models.ChangeReport{Changes: []models.ChangeEntry{}}

	if previous == nil || current == nil {
		report.HasChanges = true
		return report
	}

	for _, key := range sortedTeamKeys(current.Teams) {
		team := current.Teams[key]
		prevTeam, known := previous.Teams[key]

		if !known {
			report.Changes = append(report.Changes, models.ChangeEntry{
				Kind:  models.ChangeNewTeam,
				Team:  key,
				Count: len(team.URLs),
			})
			continue
		}

		newMatches := subtract(team.URLs, prevTeam.URLs)
		if len(newMatches) > 0 {
			report.Changes = append(report.Changes, models.ChangeEntry{
				Kind:    models.ChangeNewMatches,
				Team:    key,
				Count:   len(newMatches),
				Matches: newMatches,
			})
		}
	}

	report.HasChanges = len(report.Changes) > 0
	d.logger.Debug().Bool("has_changes", report.HasChanges).Int("changes", len(report.Changes)).Msg("Snapshots compared")
	return report
}

// subtract returns the elements of current absent from previous, in
// current's order.
func subtract(current, previous []string) []string {
	known := make(map[string]bool, len(previous))
	for _, url := range previous {
		known[url] = true
	}
	diff := []string{}
	for _, url := range current {
		if !known[url] {
			diff = append(diff, url)
		}
	}
	return diff
}

// sortedTeamKeys gives the report a deterministic team order.
func sortedTeamKeys(teams map[string]models.TeamSnapshot) []string {
	keys := make([]string, 0, len(teams))
	for key := range teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
