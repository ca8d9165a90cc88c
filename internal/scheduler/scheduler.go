package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"matchwatch/internal/config"
	"matchwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
)

// Scheduler fires the update pipeline on the weekly schedule. It is a
// plain timer loop: the next activation time is computed from the weekly
// windows, a timer waits for it, and the runner is invoked. The runner's
// single-slot guard makes an overlapping trigger a logged no-op.
type Scheduler struct {
	runner   *Runner
	location *time.Location
	logger   zerolog.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewScheduler creates a Scheduler in the configured timezone. A zone that
// fails to load is an error: silently scheduling in UTC would shift every
// weekend window.
func NewScheduler(cfg config.SchedulerConfig, runner *Runner, logger zerolog.Logger) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "loading scheduler timezone '"+cfg.Timezone+"'")
	}
	return &Scheduler{
		runner:   runner,
		location: location,
		logger:   logger.With().Str("component", "Scheduler").Logger(),
		stopChan: make(chan struct{}),
	}, nil
}

// Start launches the scheduling loop in the background.
func (s *Scheduler) Start() {
	s.logger.Info().Str("timezone", s.location.String()).Msg("Scheduler started")
	s.wg.Add(1)
	go s.loop()
}

// Stop halts the scheduling loop and waits for it to exit. A run already
// in flight is not interrupted. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	for {
		now := time.Now().In(s.location)
		next := NextActivation(now)
		s.logger.Debug().Time("next_activation", next).Msg("Waiting for next scheduled update")

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
		}

		s.logger.Info().Time("activation", next).Msg("Scheduled update triggered")
		if _, err := s.runner.Run(context.Background()); err != nil {
			if errors.Is(err, errorwrapper.ErrAlreadyRunning) {
				s.logger.Warn().Msg("Previous update still running, skipping this activation")
			} else {
				s.logger.Error().Err(err).Msg("Scheduled update failed")
			}
		}
	}
}
