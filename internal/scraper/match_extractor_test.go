package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"matchwatch/internal/config"
	"matchwatch/internal/fetcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScraperConfig(baseURL string) config.ScraperConfig {
	cfg := config.NewDefaultScraperConfig()
	cfg.BaseURL = baseURL
	cfg.StatsAPIBase = "https://stats.example.com/v1/"
	cfg.MinRequestIntervalMs = 0
	cfg.TeamDelayMs = 0
	cfg.CompetitionDelayMs = 0
	return cfg
}

func newTestExtractor(t *testing.T, baseURL string) *MatchExtractor {
	t.Helper()
	cfg := testScraperConfig(baseURL)
	return NewMatchExtractor(fetcher.NewFetcher(cfg, zerolog.Nop()), cfg, zerolog.Nop())
}

// matchCard wraps a statistics link in a card mentioning both team names,
// the shape the attribution heuristic expects.
func matchCard(homeTeam, token string) string {
	return `<div class="match-card"><span>` + homeTeam + `</span> - <span>VISITANT CB</span>` +
		` <a href="/estadistiques/` + token + `">Estadistiques</a></div>`
}

// foreignCard is a card for an unrelated club.
func foreignCard(token string) string {
	return matchCard("CB LLEIDA", token)
}

func token(i int) string {
	return fmt.Sprintf("%024x", i)
}

func TestMatchExtractor_DeduplicatesAcrossPages(t *testing.T) {
	pages := map[string]string{
		"/competicions/resultats/77":   matchCard("CE BADALONES", token(1)) + matchCard("CE BADALONES", token(1)),
		"/competicions/resultats/77/2": matchCard("CE BADALONES", token(1)) + matchCard("CE BADALONES", token(2)),
		"/competicions/resultats/77/3": "<div>no more results</div>",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[r.URL.Path])
	}))
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)
	locators := extractor.Extract(context.Background(), "77", []string{"badalones"})

	require.Len(t, locators, 2)
	assert.Equal(t, token(1), locators[0].MatchID)
	assert.Equal(t, token(2), locators[1].MatchID)
	assert.Equal(t, "https://stats.example.com/v1/"+token(1)+"?currentSeason=true", locators[0].APIURL)
}

func TestMatchExtractor_StopsOnPageWithoutStatsLinks(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path == "/competicions/resultats/77" {
			fmt.Fprint(w, matchCard("CE BADALONES", token(1)))
			return
		}
		fmt.Fprint(w, "<div>empty page</div>")
	}))
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)
	locators := extractor.Extract(context.Background(), "77", []string{"badalones"})

	assert.Len(t, locators, 1)
	assert.Equal(t, 2, requests, "pagination must halt right after the first page without statistics links")
}

func TestMatchExtractor_NeverExceedsPageCap(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Every page reports links, so only the cap can stop the loop.
		fmt.Fprint(w, matchCard("CE BADALONES", token(requests)))
	}))
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)
	extractor.Extract(context.Background(), "77", []string{"badalones"})

	assert.Equal(t, 10, requests)
}

func TestMatchExtractor_UnattributedPageDoesNotStopPagination(t *testing.T) {
	pages := map[string]string{
		"/competicions/resultats/77":   foreignCard(token(1)),
		"/competicions/resultats/77/2": matchCard("CE BADALONES", token(2)),
		"/competicions/resultats/77/3": "",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[r.URL.Path])
	}))
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)
	locators := extractor.Extract(context.Background(), "77", []string{"badalones"})

	require.Len(t, locators, 1)
	assert.Equal(t, token(2), locators[0].MatchID)
}

func TestMatchExtractor_FetchFailureKeepsCollectedMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/competicions/resultats/77" {
			fmt.Fprint(w, matchCard("CE BADALONES", token(1)))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)
	locators := extractor.Extract(context.Background(), "77", []string{"badalones"})

	require.Len(t, locators, 1)
	assert.Equal(t, token(1), locators[0].MatchID)
}

func TestMatchExtractor_PageWideKeywordPrecheckShortCircuits(t *testing.T) {
	pages := map[string]string{
		"/competicions/resultats/77":   foreignCard(token(1)) + foreignCard(token(2)),
		"/competicions/resultats/77/2": "",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[r.URL.Path])
	}))
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)
	locators := extractor.Extract(context.Background(), "77", []string{"badalones"})

	assert.Empty(t, locators)
}
