// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type sessionCleaner interface {
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type Scheduler struct {
	sessions sessionCleaner
	interval time.Duration
	log      *zap.Logger
}

func New(sessions sessionCleaner, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		sessions: sessions,
		interval: interval,
		log:      log.With(zap.String("component", "scheduler")),
	}
}

// Start blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Scheduler started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	removed, err := s.sessions.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Error("Failed to clean expired sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", removed))
	}
}
