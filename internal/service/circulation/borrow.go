package circulation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// Borrow checks out a copy of the book for the member and opens a loan.
// The copy reservation and the loan row are written in one transaction: if
// either fails, neither happens. Returns ErrNoCopiesAvailable when every
// copy is out, ErrNotFound when the book or member does not exist.
func (s *Service) Borrow(ctx context.Context, memberID, bookID uuid.UUID) (*domain.Loan, error) {
	var loan *domain.Loan

	err := s.runInTxRetry(ctx, func(txCtx context.Context) error {
		// Reserve decrements the counter only while copies remain, so two
		// concurrent borrows can never both take the last copy.
		if err := s.books.Reserve(txCtx, bookID); err != nil {
			return fmt.Errorf("reserve copy: %w", err)
		}

		created, err := s.loans.Create(txCtx, &domain.Loan{
			BookID:            bookID,
			MemberID:          memberID,
			State:             domain.LoanStateActive,
			NotificationState: domain.NotificationStateBorrowPending,
		})
		if err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		loan = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("circulation.Borrow: %w", err)
	}

	s.enqueueNotification(ctx, loan.ID, domain.NotificationKindBorrow)

	s.log.InfoContext(ctx, "book borrowed",
		slog.String("loan_id", loan.ID.String()),
		slog.String("book_id", bookID.String()),
		slog.String("member_id", memberID.String()))

	return loan, nil
}
