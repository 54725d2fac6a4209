// Package member implements the Member repository using PostgreSQL.
package member

import (
	"context"
	"strings"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// Repo provides member persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new member repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO members (name, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, name, email, password_hash, created_at, updated_at`

const getByIDSQL = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM members
WHERE id = $1`

const getByEmailSQL = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM members
WHERE email = $1`

// Create inserts a new member. Email uniqueness is enforced by the database;
// a duplicate maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, createSQL, m.Name, strings.ToLower(m.Email), m.PasswordHash)

	stored, err := scanMember(row)
	if err != nil {
		return nil, postgres.MapError(err, "member", uuid.Nil)
	}

	return stored, nil
}

// GetByID returns a member by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	stored, err := scanMember(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "member", id)
	}

	return stored, nil
}

// GetByEmail returns a member by email (stored lowercased).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	stored, err := scanMember(q.QueryRow(ctx, getByEmailSQL, strings.ToLower(email)))
	if err != nil {
		return nil, postgres.MapError(err, "member", uuid.Nil)
	}

	return stored, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.PasswordHash,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
