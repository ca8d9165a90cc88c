package scraper

import (
	"bytes"
	"context"
	"fmt"

	"matchwatch/internal/config"
	"matchwatch/internal/fetcher"
	"matchwatch/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// MatchExtractor paginates through a competition's results pages and
// collects the matches attributed to the tracked club.
type MatchExtractor struct {
	fetcher *fetcher.Fetcher
	cfg     config.ScraperConfig
	logger  zerolog.Logger
}

// NewMatchExtractor creates a new MatchExtractor.
func NewMatchExtractor(f *fetcher.Fetcher, cfg config.ScraperConfig, logger zerolog.Logger) *MatchExtractor {
	return &MatchExtractor{
		fetcher: f,
		cfg:     cfg,
		logger:  logger.With().Str("component", "MatchExtractor").Logger(),
	}
}

// Extract walks the competition's result pages and returns the attributed
// match locators, deduplicated by match id across all pages in discovery
// order. Pagination stops at the configured page cap, on a page without
// any statistics links, or on a fetch failure (keeping what was already
// collected).
func (me *MatchExtractor) Extract(ctx context.Context, competitionID string, keywords []string) []models.MatchLocator {
	me.logger.Debug().Str("competition_id", competitionID).Msg("Extracting competition matches")

	seen := make(map[string]bool)
	ordered := []string{}

	for page := 1; page <= me.cfg.MaxPagesPerCompetition; page++ {
		pageURL := me.pageURL(competitionID, page)

		body, err := me.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			me.logger.Warn().Err(err).Str("competition_id", competitionID).Int("page", page).Msg("Fetch failed, aborting pagination for competition")
			break
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			me.logger.Warn().Err(err).Str("competition_id", competitionID).Int("page", page).Msg("Failed to parse results page markup")
			break
		}

		links := doc.Find(`a[href*="/estadistiques/"]`)
		totalLinks := 0
		links.Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if ExtractMatchToken(href) != "" {
				totalLinks++
			}
		})

		attributed := 0
		// Page-wide pre-check first: if the markup never mentions the club,
		// no link on this page can be attributed and the per-link ancestor
		// walks are skipped entirely.
		if ContainsAnyKeyword(string(body), keywords) {
			links.Each(func(_ int, sel *goquery.Selection) {
				href, _ := sel.Attr("href")
				token := ExtractMatchToken(href)
				if token == "" || seen[token] {
					return
				}
				if level, ok := AttributeLink(sel, keywords); ok {
					seen[token] = true
					ordered = append(ordered, token)
					attributed++
					me.logger.Debug().Str("match_id", token).Int("ancestor_level", level).Msg("Match attributed to club")
				}
			})
		}

		me.logger.Debug().
			Str("competition_id", competitionID).
			Int("page", page).
			Int("attributed", attributed).
			Int("total_links", totalLinks).
			Msg("Results page processed")

		// A page without any statistics links marks the end of the result
		// list. A page with links but none attributed is not a stop
		// condition: a later page may still hold club matches.
		if totalLinks == 0 {
			break
		}
	}

	locators := make([]models.MatchLocator, 0, len(ordered))
	for _, token := range ordered {
		locators = append(locators, models.MatchLocator{
			MatchID: token,
			APIURL:  fmt.Sprintf("%s%s?currentSeason=true", me.cfg.StatsAPIBase, token),
		})
	}

	me.logger.Debug().Str("competition_id", competitionID).Int("matches", len(locators)).Msg("Competition matches extracted")
	return locators
}

// pageURL builds the results page address: page 1 is the bare competition
// address, later pages append the page number as a path segment.
func (me *MatchExtractor) pageURL(competitionID string, page int) string {
	if page == 1 {
		return fmt.Sprintf("%s/competicions/resultats/%s", me.cfg.BaseURL, competitionID)
	}
	return fmt.Sprintf("%s/competicions/resultats/%s/%d", me.cfg.BaseURL, competitionID, page)
}
