// Package auth implements member registration and authentication.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// memberRepo defines the member repository interface needed by auth service.
type memberRepo interface {
	Create(ctx context.Context, m *domain.Member) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
}

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(memberID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// Service implements auth operations.
type Service struct {
	log     *slog.Logger
	members memberRepo
	jwt     jwtManager
	cfg     config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, members memberRepo, jwt jwtManager, cfg config.AuthConfig) *Service {
	return &Service{
		log:     logger.With("service", "auth"),
		members: members,
		jwt:     jwt,
		cfg:     cfg,
	}
}

// ValidateToken checks an access token and returns the member ID it was
// issued for. Returns ErrUnauthorized for any invalid token.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	memberID, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return memberID, nil
}
