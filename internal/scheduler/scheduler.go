package scheduler

import (
	"context"
	"time"

	"skill-quest/internal/logger"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const refreshTimeout = 30 * time.Second

// LeaderboardRefresher reloads the cached leaderboard.
type LeaderboardRefresher interface {
	RefreshLeaderboard(ctx context.Context) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler   *gocron.Scheduler
	leaderboard LeaderboardRefresher
	interval    time.Duration
}

// New creates a scheduler that warms the leaderboard cache every interval.
func New(leaderboard LeaderboardRefresher, interval time.Duration, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler:   s,
		leaderboard: leaderboard,
		interval:    interval,
	}
}

// Start schedules the jobs and runs them in the background. A non-positive interval
// disables the leaderboard job.
func (s *Scheduler) Start() error {
	if s.interval > 0 {
		if _, err := s.scheduler.Every(s.interval).Do(s.refreshLeaderboard); err != nil {
			return err
		}
		logger.Get().Info("Leaderboard refresh scheduled", zap.Duration("interval", s.interval))
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) refreshLeaderboard() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	if err := s.leaderboard.RefreshLeaderboard(ctx); err != nil {
		logger.Get().Warn("Leaderboard refresh failed", zap.Error(err))
		return
	}
	logger.Get().Debug("Leaderboard refreshed", zap.Duration("took", time.Since(start)))
}
