package circulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// Return closes the member's loan and puts the copy back into circulation.
// Closing the loan is conditional on it still being active, so concurrent
// returns of the same loan release the copy exactly once. Returns
// ErrAlreadyReturned for a closed loan and ErrNotFound when the loan does
// not exist or belongs to another member.
func (s *Service) Return(ctx context.Context, memberID, loanID uuid.UUID) (*domain.Loan, error) {
	var loan *domain.Loan

	err := s.runInTxRetry(ctx, func(txCtx context.Context) error {
		existing, err := s.loans.GetByID(txCtx, loanID)
		if err != nil {
			return fmt.Errorf("get loan: %w", err)
		}
		// A member can only see and return their own loans.
		if existing.MemberID != memberID {
			return fmt.Errorf("loan %s: %w", loanID, domain.ErrNotFound)
		}

		closed, err := s.loans.MarkReturned(txCtx, loanID, time.Now())
		if err != nil {
			return fmt.Errorf("mark returned: %w", err)
		}

		if err := s.books.Release(txCtx, closed.BookID); err != nil {
			return fmt.Errorf("release copy: %w", err)
		}

		loan = closed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("circulation.Return: %w", err)
	}

	s.enqueueNotification(ctx, loan.ID, domain.NotificationKindReturn)

	s.log.InfoContext(ctx, "book returned",
		slog.String("loan_id", loan.ID.String()),
		slog.String("book_id", loan.BookID.String()),
		slog.String("member_id", memberID.String()))

	return loan, nil
}
