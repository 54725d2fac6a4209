// Package notifier delivers loan lifecycle emails from the durable job queue.
//
// The dispatcher polls the queue, fans leased jobs out to a fixed pool of
// workers, and records delivery with a compare-and-set on the loan's
// notification state. The CAS is what makes delivery at-most-once per
// lifecycle event: a job whose loan has already moved past the matching
// Pending state is stale and is dropped without sending.
package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// jobRepo defines the queue interface needed by the dispatcher.
type jobRepo interface {
	Lease(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]domain.NotificationJob, error)
	Reschedule(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// loanRepo defines the loan repository interface needed by the dispatcher.
type loanRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	AdvanceNotification(ctx context.Context, id uuid.UUID, expected, next domain.NotificationState) error
}

// memberRepo defines the member repository interface needed by the dispatcher.
type memberRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
}

// bookRepo defines the book repository interface needed by the dispatcher.
type bookRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
}

// mailer defines the delivery transport interface needed by the dispatcher.
type mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service is the notification dispatcher.
type Service struct {
	log        *slog.Logger
	jobs       jobRepo
	loans      loanRepo
	members    memberRepo
	books      bookRepo
	mail       mailer
	cfg        config.NotifyConfig
	loanPeriod time.Duration
}

// NewService creates a new notification dispatcher.
func NewService(
	logger *slog.Logger,
	jobs jobRepo,
	loans loanRepo,
	members memberRepo,
	books bookRepo,
	mail mailer,
	cfg config.NotifyConfig,
	loanPeriod time.Duration,
) *Service {
	return &Service{
		log:        logger.With("service", "notifier"),
		jobs:       jobs,
		loans:      loans,
		members:    members,
		books:      books,
		mail:       mail,
		cfg:        cfg,
		loanPeriod: loanPeriod,
	}
}

// Run polls the queue until ctx is cancelled. Leased jobs are fanned out to
// cfg.Workers goroutines; Run returns after in-flight jobs finish.
func (s *Service) Run(ctx context.Context) {
	jobCh := make(chan domain.NotificationJob)

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				s.processJob(ctx, job)
			}
		}()
	}

	s.log.InfoContext(ctx, "notification dispatcher started",
		slog.Int("workers", s.cfg.Workers),
		slog.Duration("poll_interval", s.cfg.PollInterval))

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		s.pollOnce(ctx, jobCh)

		select {
		case <-ctx.Done():
			close(jobCh)
			wg.Wait()
			s.log.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) pollOnce(ctx context.Context, jobCh chan<- domain.NotificationJob) {
	jobs, err := s.jobs.Lease(ctx, time.Now(), s.cfg.LeaseTime, s.cfg.BatchSize)
	if err != nil {
		if ctx.Err() == nil {
			s.log.ErrorContext(ctx, "lease notification jobs", slog.Any("error", err))
		}
		return
	}

	for _, job := range jobs {
		select {
		case jobCh <- job:
		case <-ctx.Done():
			// Unprocessed jobs stay leased and become due again later.
			return
		}
	}
}
