// Package overdue periodically flags loans that have outlived the loan
// period and queues overdue notifications for them.
package overdue

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// loanRepo defines the loan repository interface needed by the sweep.
type loanRepo interface {
	ClaimOverdue(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

// jobRepo defines the notification queue interface needed by the sweep.
type jobRepo interface {
	Enqueue(ctx context.Context, loanID uuid.UUID, kind domain.NotificationKind) error
}

// Service runs the overdue sweep.
type Service struct {
	log   *slog.Logger
	loans loanRepo
	jobs  jobRepo
	cfg   config.LoanConfig
}

// NewService creates a new overdue sweep instance.
func NewService(logger *slog.Logger, loans loanRepo, jobs jobRepo, cfg config.LoanConfig) *Service {
	return &Service{
		log:   logger.With("service", "overdue"),
		loans: loans,
		jobs:  jobs,
		cfg:   cfg,
	}
}

// Run sweeps immediately, then on every tick until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	s.log.InfoContext(ctx, "overdue sweep started",
		slog.Duration("interval", s.cfg.SweepInterval),
		slog.Duration("loan_period", s.cfg.Period))

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		s.Sweep(ctx, time.Now())

		select {
		case <-ctx.Done():
			s.log.Info("overdue sweep stopped")
			return
		case <-ticker.C:
		}
	}
}

// Sweep claims every active loan borrowed before now minus the loan period
// and enqueues an overdue notification for each. Claiming moves the loan's
// notification state to Overdue-Pending in the same statement, so a loan is
// claimed by exactly one sweep no matter how many instances run.
func (s *Service) Sweep(ctx context.Context, now time.Time) {
	cutoff := now.Add(-s.cfg.Period)

	claimed, err := s.loans.ClaimOverdue(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			s.log.ErrorContext(ctx, "claim overdue loans", slog.Any("error", err))
		}
		return
	}
	if len(claimed) == 0 {
		return
	}

	enqueued := 0
	for _, loanID := range claimed {
		// One broken enqueue must not starve the rest of the batch. A loan
		// claimed but not enqueued stays Overdue-Pending and is picked up by
		// a manual re-enqueue, never silently lost.
		if err := s.jobs.Enqueue(ctx, loanID, domain.NotificationKindOverdue); err != nil {
			s.log.ErrorContext(ctx, "enqueue overdue notification",
				slog.String("loan_id", loanID.String()),
				slog.Any("error", err))
			continue
		}
		enqueued++
	}

	s.log.InfoContext(ctx, "overdue sweep finished",
		slog.Int("claimed", len(claimed)),
		slog.Int("enqueued", enqueued))
}
