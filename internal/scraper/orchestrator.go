package scraper

import (
	"context"
	"time"

	"matchwatch/internal/classifier"
	"matchwatch/internal/config"
	"matchwatch/internal/errorwrapper"
	"matchwatch/internal/fetcher"
	"matchwatch/internal/models"

	"github.com/rs/zerolog"
)

// Orchestrator drives the four crawl stages strictly sequentially and
// assembles the final club snapshot. There is deliberately no parallel
// fan-out: the politeness policy bounds request concurrency to one.
type Orchestrator struct {
	teamLister        *TeamLister
	competitionLister *CompetitionLister
	matchExtractor    *MatchExtractor
	cfg               config.ScraperConfig
	logger            zerolog.Logger
}

// NewOrchestrator creates the full crawl pipeline on top of a shared
// fetcher.
func NewOrchestrator(cfg config.ScraperConfig, logger zerolog.Logger) *Orchestrator {
	f := fetcher.NewFetcher(cfg, logger)
	return &Orchestrator{
		teamLister:        NewTeamLister(f, cfg, logger),
		competitionLister: NewCompetitionLister(f, cfg, logger),
		matchExtractor:    NewMatchExtractor(f, cfg, logger),
		cfg:               cfg,
		logger:            logger.With().Str("component", "Orchestrator").Logger(),
	}
}

// Crawl runs the complete extraction and returns the assembled snapshot.
// A club page without any teams makes the whole run fail; a single team or
// competition failing only skips that branch.
func (o *Orchestrator) Crawl(ctx context.Context) (*models.ClubSnapshot, error) {
	o.logger.Info().Msg("Starting full extraction")

	teams, err := o.teamLister.List(ctx)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "listing club teams")
	}
	if len(teams) == 0 {
		return nil, errorwrapper.ErrEmptyTeamList
	}

	snapshot := &models.ClubSnapshot{
		Teams:      make(map[string]models.TeamSnapshot),
		Season:     o.cfg.Season,
		ClubID:     o.cfg.ClubID,
		ProducedAt: time.Now(),
	}

	for _, team := range teams {
		if err := pause(ctx, time.Duration(o.cfg.TeamDelayMs)*time.Millisecond); err != nil {
			return nil, err
		}

		competitions := o.competitionLister.List(ctx, team)
		if len(competitions) == 0 {
			o.logger.Warn().Str("team", team.Name).Msg("No competitions found for team, skipping")
			continue
		}

		key, profile := classifier.Classify(team.Name, o.cfg.ClubKeywords)

		seen := make(map[string]bool)
		urls := []string{}
		for _, competitionID := range competitions {
			if err := pause(ctx, time.Duration(o.cfg.CompetitionDelayMs)*time.Millisecond); err != nil {
				return nil, err
			}
			for _, locator := range o.matchExtractor.Extract(ctx, competitionID, profile.Keywords) {
				if seen[locator.MatchID] {
					continue
				}
				seen[locator.MatchID] = true
				urls = append(urls, locator.APIURL)
			}
		}

		// A team without matches contributes no signal and would compare
		// as "team removed" on later diffs, so it is left out entirely.
		if len(urls) == 0 {
			o.logger.Warn().Str("team", team.Name).Msg("No matches found for team, omitting from snapshot")
			continue
		}

		snapshot.Teams[key] = models.TeamSnapshot{
			Name:     team.Name,
			Icon:     profile.Icon,
			Keywords: profile.Keywords,
			URLs:     urls,
		}
		o.logger.Info().Str("team", team.Name).Str("key", key).Int("matches", len(urls)).Msg("Team sealed into snapshot")
	}

	snapshot.RecomputeTotals()
	o.logger.Info().
		Int("total_teams", snapshot.TotalTeams).
		Int("total_matches", snapshot.TotalMatches).
		Msg("Extraction complete")
	return snapshot, nil
}

// pause waits for the inter-stage politeness delay, honoring cancellation.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
