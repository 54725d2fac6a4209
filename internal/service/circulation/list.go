package circulation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// ListMemberLoans returns the member's active loans, oldest first.
func (s *Service) ListMemberLoans(ctx context.Context, memberID uuid.UUID) ([]domain.Loan, error) {
	loans, err := s.loans.ListActiveByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("circulation.ListMemberLoans: %w", err)
	}
	return loans, nil
}
