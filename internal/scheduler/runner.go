package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"matchwatch/internal/differ"
	"matchwatch/internal/errorwrapper"
	"matchwatch/internal/models"

	"github.com/rs/zerolog"
)

// Crawler runs one full extraction and returns the assembled snapshot.
type Crawler interface {
	Crawl(ctx context.Context) (*models.ClubSnapshot, error)
}

// StateStore is the persistence contract the runner depends on.
type StateStore interface {
	Load() (*models.ClubSnapshot, models.Metadata, error)
	Save(snapshot *models.ClubSnapshot) error
	TouchLastChecked() error
}

// Runner executes the crawl-diff-persist pipeline under a process-wide
// single-slot guarantee: a trigger arriving while a run is active is
// rejected immediately, never queued.
type Runner struct {
	crawler Crawler
	store   StateStore
	differ  *differ.Differ
	logger  zerolog.Logger

	running    atomic.Bool
	mu         sync.Mutex
	lastResult *models.RunResult
}

// NewRunner creates a new Runner.
func NewRunner(crawler Crawler, store StateStore, d *differ.Differ, logger zerolog.Logger) *Runner {
	return &Runner{
		crawler: crawler,
		store:   store,
		differ:  d,
		logger:  logger.With().Str("component", "Runner").Logger(),
	}
}

// Run executes one pipeline pass: load previous state, crawl, diff, and
// persist only when the report says something changed. The returned
// RunResult is also retained as the last result for status queries.
// Returns errorwrapper.ErrAlreadyRunning when a run is already in flight.
func (r *Runner) Run(ctx context.Context) (models.RunResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		r.logger.Warn().Msg("Update already in progress, rejecting trigger")
		return models.RunResult{}, errorwrapper.ErrAlreadyRunning
	}
	defer r.running.Store(false)

	r.logger.Info().Msg("Starting update run")

	previous, _, err := r.store.Load()
	if err != nil {
		return r.fail(errorwrapper.WrapError(err, "loading persisted state"))
	}

	current, err := r.crawler.Crawl(ctx)
	if err != nil {
		return r.fail(errorwrapper.WrapError(err, "crawl failed"))
	}

	report := r.differ.Diff(previous, current)
	if report.HasChanges {
		r.logChanges(report)
		if err := r.store.Save(current); err != nil {
			return r.fail(errorwrapper.WrapError(err, "persisting snapshot"))
		}
	} else {
		r.logger.Info().Msg("No changes detected, state is up to date")
		if err := r.store.TouchLastChecked(); err != nil {
			return r.fail(errorwrapper.WrapError(err, "recording check timestamp"))
		}
	}

	result := models.RunResult{
		Success:    true,
		HasChanges: report.HasChanges,
		Changes:    report.Changes,
		Timestamp:  time.Now(),
	}
	r.setLastResult(result)
	return result, nil
}

// IsRunning reports whether a run is currently in flight.
func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

// LastResult returns the most recent run outcome, or nil before any run.
func (r *Runner) LastResult() *models.RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastResult
}

func (r *Runner) setLastResult(result models.RunResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastResult = &result
}

func (r *Runner) fail(err error) (models.RunResult, error) {
	r.logger.Error().Err(err).Msg("Update run failed")
	result := models.RunResult{
		Success:   false,
		Error:     err.Error(),
		Timestamp: time.Now(),
	}
	r.setLastResult(result)
	return result, err
}

func (r *Runner) logChanges(report models.ChangeReport) {
	r.logger.Info().Int("changes", len(report.Changes)).Msg("New matches detected")
	for _, change := range report.Changes {
		switch change.Kind {
		case models.ChangeNewTeam:
			r.logger.Info().Str("team", change.Team).Int("matches", change.Count).Msg("New team")
		case models.ChangeNewMatches:
			r.logger.Info().Str("team", change.Team).Int("matches", change.Count).Msg("New matches for team")
		}
	}
}
