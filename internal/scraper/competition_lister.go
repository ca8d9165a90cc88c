package scraper

import (
	"bytes"
	"context"
	"regexp"

	"matchwatch/internal/config"
	"matchwatch/internal/fetcher"
	"matchwatch/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

var competitionLinkPattern = regexp.MustCompile(`/competicions/resultats/(\d+)`)

// CompetitionLister extracts the competitions a team plays in from the
// team's page.
type CompetitionLister struct {
	fetcher *fetcher.Fetcher
	cfg     config.ScraperConfig
	logger  zerolog.Logger
}

// NewCompetitionLister creates a new CompetitionLister.
func NewCompetitionLister(f *fetcher.Fetcher, cfg config.ScraperConfig, logger zerolog.Logger) *CompetitionLister {
	return &CompetitionLister{
		fetcher: f,
		cfg:     cfg,
		logger:  logger.With().Str("component", "CompetitionLister").Logger(),
	}
}

// List fetches the team page and returns the deduplicated competition ids
// in first-seen order. Failures degrade to an empty list: one team's
// missing competitions never aborts the crawl.
func (cl *CompetitionLister) List(ctx context.Context, team models.TeamRef) []string {
	cl.logger.Debug().Str("team", team.Name).Str("url", team.URL).Msg("Looking up team competitions")

	body, err := cl.fetcher.Fetch(ctx, team.URL)
	if err != nil {
		cl.logger.Warn().Err(err).Str("team_id", team.ID).Str("team", team.Name).Msg("Failed to fetch team page, skipping team")
		return []string{}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		cl.logger.Warn().Err(err).Str("team_id", team.ID).Msg("Failed to parse team page markup")
		return []string{}
	}

	seen := make(map[string]bool)
	competitions := []string{}
	doc.Find(`a[href*="/competicions/resultats/"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := competitionLinkPattern.FindStringSubmatch(href)
		if m == nil || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		competitions = append(competitions, m[1])
	})

	cl.logger.Debug().Str("team", team.Name).Int("competitions", len(competitions)).Msg("Team competitions found")
	return competitions
}
