package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"matchwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestrator_AssemblesSnapshot(t *testing.T) {
	pages := map[string]string{
		"/club/150": `
			<a href="/equip/1001">CE BADALONES SENIOR A MASCULI</a>
			<a href="/equip/1002">CE BADALONES JUNIOR FEMENI</a>`,
		"/equip/1001": `<a href="/competicions/resultats/501">Lliga</a>`,
		"/equip/1002": `<a href="/competicions/resultats/502">Lliga</a>`,
		"/competicions/resultats/501": matchCard("CE BADALONES", token(1)) +
			matchCard("CE BADALONES", token(2)),
		"/competicions/resultats/501/2": "",
		// The junior team only faces foreign clubs this season: zero
		// attributed matches, so it must not appear in the snapshot.
		"/competicions/resultats/502":   foreignCard(token(3)),
		"/competicions/resultats/502/2": "",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[r.URL.Path])
	}))
	defer server.Close()

	orchestrator := NewOrchestrator(testScraperConfig(server.URL), zerolog.Nop())
	snapshot, err := orchestrator.Crawl(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Teams, 1)
	team, ok := snapshot.Teams["senior-a-masc"]
	require.True(t, ok)
	assert.Equal(t, "CE BADALONES SENIOR A MASCULI", team.Name)
	assert.Len(t, team.URLs, 2)
	assert.Equal(t, 1, snapshot.TotalTeams)
	assert.Equal(t, 2, snapshot.TotalMatches)
	assert.Equal(t, "2025", snapshot.Season)
	assert.Equal(t, "150", snapshot.ClubID)
	assert.False(t, snapshot.ProducedAt.IsZero())
}

func TestOrchestrator_AttributionUsesConfiguredKeywords(t *testing.T) {
	pages := map[string]string{
		"/club/150":                     `<a href="/equip/1001">CB GRANOLLERS SENIOR A MASCULI</a>`,
		"/equip/1001":                   `<a href="/competicions/resultats/501">Lliga</a>`,
		"/competicions/resultats/501":   matchCard("CB GRANOLLERS", token(1)),
		"/competicions/resultats/501/2": "",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[r.URL.Path])
	}))
	defer server.Close()

	cfg := testScraperConfig(server.URL)
	cfg.ClubKeywords = []string{"granollers"}

	orchestrator := NewOrchestrator(cfg, zerolog.Nop())
	snapshot, err := orchestrator.Crawl(context.Background())
	require.NoError(t, err)

	team, ok := snapshot.Teams["senior-a-masc"]
	require.True(t, ok)
	assert.Equal(t, []string{"granollers"}, team.Keywords)
	assert.Len(t, team.URLs, 1)
}

func TestOrchestrator_EmptyTeamListFailsTheRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer server.Close()

	orchestrator := NewOrchestrator(testScraperConfig(server.URL), zerolog.Nop())
	snapshot, err := orchestrator.Crawl(context.Background())

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, errorwrapper.ErrEmptyTeamList)
}

func TestOrchestrator_TeamWithoutCompetitionsIsSkipped(t *testing.T) {
	pages := map[string]string{
		"/club/150":   `<a href="/equip/1001">CE BADALONES SENIOR A MASCULI</a>`,
		"/equip/1001": `<p>cap competicio</p>`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[r.URL.Path])
	}))
	defer server.Close()

	orchestrator := NewOrchestrator(testScraperConfig(server.URL), zerolog.Nop())
	snapshot, err := orchestrator.Crawl(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snapshot.Teams)
	assert.Equal(t, 0, snapshot.TotalTeams)
	assert.Equal(t, 0, snapshot.TotalMatches)
}

func TestOrchestrator_DeduplicatesAcrossCompetitions(t *testing.T) {
	pages := map[string]string{
		"/club/150": `<a href="/equip/1001">CE BADALONES SENIOR A MASCULI</a>`,
		"/equip/1001": `
			<a href="/competicions/resultats/501">Lliga</a>
			<a href="/competicions/resultats/502">Copa</a>`,
		"/competicions/resultats/501":   matchCard("CE BADALONES", token(1)),
		"/competicions/resultats/501/2": "",
		"/competicions/resultats/502":   matchCard("CE BADALONES", token(1)),
		"/competicions/resultats/502/2": "",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[r.URL.Path])
	}))
	defer server.Close()

	orchestrator := NewOrchestrator(testScraperConfig(server.URL), zerolog.Nop())
	snapshot, err := orchestrator.Crawl(context.Background())
	require.NoError(t, err)

	require.Contains(t, snapshot.Teams, "senior-a-masc")
	assert.Len(t, snapshot.Teams["senior-a-masc"].URLs, 1)
}
