package differ

import (
	"testing"

	"matchwatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWith(teams map[string][]string) *models.ClubSnapshot {
	s := &models.ClubSnapshot{Teams: make(map[string]models.TeamSnapshot)}
	for key, urls := range teams {
		s.Teams[key] = models.TeamSnapshot{Name: key, URLs: urls}
	}
	s.RecomputeTotals()
	return s
}

func TestDiff_FirstRunReportsChangeWithoutEntries(t *testing.T) {
	d := NewDiffer(zerolog.Nop())

	report := d.Diff(nil, snapshotWith(map[string][]string{"senior-a-masc": {"u1"}}))

	assert.True(t, report.HasChanges)
	assert.Empty(t, report.Changes)
}

func TestDiff_IdenticalSnapshotsYieldNoChanges(t *testing.T) {
	d := NewDiffer(zerolog.Nop())
	s := snapshotWith(map[string][]string{
		"senior-a-masc": {"u1", "u2"},
		"junior-fem":    {"u3"},
	})

	report := d.Diff(s, s)

	assert.False(t, report.HasChanges)
	assert.Empty(t, report.Changes)
}

func TestDiff_NewTeamIsReportedWithFullCount(t *testing.T) {
	d := NewDiffer(zerolog.Nop())
	previous := snapshotWith(map[string][]string{})
	current := snapshotWith(map[string][]string{"senior-a-masc": {"u1", "u2", "u3"}})

	report := d.Diff(previous, current)

	require.True(t, report.HasChanges)
	require.Len(t, report.Changes, 1)
	entry := report.Changes[0]
	assert.Equal(t, models.ChangeNewTeam, entry.Kind)
	assert.Equal(t, "senior-a-masc", entry.Team)
	assert.Equal(t, 3, entry.Count)
	assert.Empty(t, entry.Matches)
}

func TestDiff_NewMatchesAreEnumerated(t *testing.T) {
	d := NewDiffer(zerolog.Nop())
	previous := snapshotWith(map[string][]string{"senior-a-masc": {"u1", "u2"}})
	current := snapshotWith(map[string][]string{"senior-a-masc": {"u1", "u2", "u3"}})

	report := d.Diff(previous, current)

	require.True(t, report.HasChanges)
	require.Len(t, report.Changes, 1)
	entry := report.Changes[0]
	assert.Equal(t, models.ChangeNewMatches, entry.Kind)
	assert.Equal(t, "senior-a-masc", entry.Team)
	assert.Equal(t, 1, entry.Count)
	assert.Equal(t, []string{"u3"}, entry.Matches)
}

func TestDiff_RemovedTeamIsNotReported(t *testing.T) {
	// A team present only in the previous snapshot disappeared because it
	// has no current-season matches; that is deliberately not a change.
	d := NewDiffer(zerolog.Nop())
	previous := snapshotWith(map[string][]string{
		"senior-a-masc": {"u1"},
		"junior-fem":    {"u2"},
	})
	current := snapshotWith(map[string][]string{"senior-a-masc": {"u1"}})

	report := d.Diff(previous, current)

	assert.False(t, report.HasChanges)
	assert.Empty(t, report.Changes)
}

func TestDiff_MultipleChangesAreDeterministicallyOrdered(t *testing.T) {
	d := NewDiffer(zerolog.Nop())
	previous := snapshotWith(map[string][]string{"senior-a-masc": {"u1"}})
	current := snapshotWith(map[string][]string{
		"senior-a-masc": {"u1", "u2"},
		"cadet-fem":     {"u9"},
	})

	report := d.Diff(previous, current)

	require.Len(t, report.Changes, 2)
	assert.Equal(t, "cadet-fem", report.Changes[0].Team)
	assert.Equal(t, models.ChangeNewTeam, report.Changes[0].Kind)
	assert.Equal(t, "senior-a-masc", report.Changes[1].Team)
	assert.Equal(t, models.ChangeNewMatches, report.Changes[1].Kind)
}
