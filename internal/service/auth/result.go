package auth

import "github.com/heartmarshall/library-backend/internal/domain"

// AuthResult is returned by Register and Login operations.
type AuthResult struct {
	AccessToken string
	Member      *domain.Member
}
