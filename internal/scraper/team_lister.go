package scraper

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"matchwatch/internal/config"
	"matchwatch/internal/fetcher"
	"matchwatch/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

var teamLinkPattern = regexp.MustCompile(`/equip/(\d+)`)

// minTeamNameLength filters out icon-only or decorative links on the club
// page whose visible text is too short to be a team name.
const minTeamNameLength = 4

// TeamLister extracts the club's teams from its landing page.
type TeamLister struct {
	fetcher *fetcher.Fetcher
	cfg     config.ScraperConfig
	logger  zerolog.Logger
}

// NewTeamLister creates a new TeamLister.
func NewTeamLister(f *fetcher.Fetcher, cfg config.ScraperConfig, logger zerolog.Logger) *TeamLister {
	return &TeamLister{
		fetcher: f,
		cfg:     cfg,
		logger:  logger.With().Str("component", "TeamLister").Logger(),
	}
}

// List fetches the club landing page and returns the deduplicated teams in
// first-seen order. An empty result is not an error here; the orchestrator
// decides that a teamless crawl is fatal.
func (tl *TeamLister) List(ctx context.Context) ([]models.TeamRef, error) {
	clubURL := fmt.Sprintf("%s/club/%s", tl.cfg.BaseURL, tl.cfg.ClubID)
	tl.logger.Info().Str("url", clubURL).Msg("Looking up club teams")

	body, err := tl.fetcher.Fetch(ctx, clubURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		tl.logger.Warn().Err(err).Msg("Failed to parse club page markup")
		return []models.TeamRef{}, nil
	}

	seen := make(map[string]bool)
	teams := []models.TeamRef{}
	doc.Find(`a[href*="/equip/"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := teamLinkPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		teamID := m[1]
		name := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(name) < minTeamNameLength || seen[teamID] {
			return
		}
		seen[teamID] = true
		teams = append(teams, models.TeamRef{
			ID:   teamID,
			Name: name,
			URL:  fmt.Sprintf("%s/equip/%s", tl.cfg.BaseURL, teamID),
		})
	})

	tl.logger.Info().Int("teams", len(teams)).Msg("Club teams found")
	return teams, nil
}
