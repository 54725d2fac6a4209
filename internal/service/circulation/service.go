// Package circulation implements the borrow/return loan lifecycle.
//
// Borrow and Return run their inventory and loan writes inside a single
// database transaction, so the available-copies counter and the loan state
// can never drift apart. Notification jobs are enqueued after commit, which
// means a crash between commit and enqueue loses at most the delivery
// attempt, never the loan itself.
package circulation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// bookRepo defines the book repository interface needed by circulation service.
type bookRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	Reserve(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
}

// loanRepo defines the loan repository interface needed by circulation service.
type loanRepo interface {
	Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Loan, error)
	MarkReturned(ctx context.Context, id uuid.UUID, closedAt time.Time) (*domain.Loan, error)
}

// jobRepo defines the notification queue interface needed by circulation service.
type jobRepo interface {
	Enqueue(ctx context.Context, loanID uuid.UUID, kind domain.NotificationKind) error
}

// txManager defines the transaction manager interface needed by circulation service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements circulation operations.
type Service struct {
	log   *slog.Logger
	books bookRepo
	loans loanRepo
	jobs  jobRepo
	tx    txManager
	cfg   config.LoanConfig
}

// NewService creates a new circulation service instance.
func NewService(
	logger *slog.Logger,
	books bookRepo,
	loans loanRepo,
	jobs jobRepo,
	tx txManager,
	cfg config.LoanConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "circulation"),
		books: books,
		loans: loans,
		jobs:  jobs,
		tx:    tx,
		cfg:   cfg,
	}
}

// runInTxRetry runs fn in a transaction, retrying on serialization conflicts.
// The retry budget is bounded; a persistent conflict surfaces as ErrConflict.
func (s *Service) runInTxRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= s.cfg.ConflictRetries; attempt++ {
		err = s.tx.RunInTx(ctx, fn)
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		s.log.WarnContext(ctx, "transaction conflict, retrying",
			slog.Int("attempt", attempt+1))
	}
	return err
}

// enqueueNotification records delivery intent for a committed lifecycle
// event. Enqueue failure is logged, not returned: the loan transition has
// already committed and must not be reported as failed.
func (s *Service) enqueueNotification(ctx context.Context, loanID uuid.UUID, kind domain.NotificationKind) {
	if err := s.jobs.Enqueue(ctx, loanID, kind); err != nil {
		s.log.ErrorContext(ctx, "enqueue notification job",
			slog.String("loan_id", loanID.String()),
			slog.String("kind", kind.String()),
			slog.Any("error", err))
	}
}
