// Package book implements the Book repository using PostgreSQL,
// including the availability counter operations used by borrow/return.
package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new book repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO books (title, author, total_copies, available_copies)
VALUES ($1, $2, $3, $4)
RETURNING id, title, author, total_copies, available_copies, created_at, updated_at`

const getByIDSQL = `
SELECT id, title, author, total_copies, available_copies, created_at, updated_at
FROM books
WHERE id = $1`

const reserveSQL = `
UPDATE books
SET available_copies = available_copies - 1, updated_at = now()
WHERE id = $1 AND available_copies > 0`

const releaseSQL = `
UPDATE books
SET available_copies = LEAST(available_copies + 1, total_copies), updated_at = now()
WHERE id = $1`

const existsSQL = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`

// Create inserts a new book and returns the stored row.
func (r *Repo) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, createSQL,
		book.Title, book.Author, book.TotalCopies, book.AvailableCopies)

	stored, err := scanBook(row)
	if err != nil {
		return nil, postgres.MapError(err, "book", uuid.Nil)
	}

	return stored, nil
}

// GetByID returns a book by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	stored, err := scanBook(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "book", id)
	}

	return stored, nil
}

// Reserve atomically decrements available_copies by one. The guarded UPDATE
// takes a row lock, so concurrent reservations serialize on the row and none
// can observe a stale count. Returns domain.ErrNoCopiesAvailable when the
// counter is at zero and domain.ErrNotFound when the book does not exist.
func (r *Repo) Reserve(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, reserveSQL, id)
	if err != nil {
		return postgres.MapError(err, "book", id)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the book is missing or no copies are left.
	var exists bool
	if err := q.QueryRow(ctx, existsSQL, id).Scan(&exists); err != nil {
		return postgres.MapError(err, "book", id)
	}
	if !exists {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return fmt.Errorf("book %s: %w", id, domain.ErrNoCopiesAvailable)
}

// Release increments available_copies by one, clamped to total_copies.
// The clamp keeps the ledger a dumb counter; double-return is prevented by
// the loan state machine, not here.
func (r *Repo) Release(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, releaseSQL, id)
	if err != nil {
		return postgres.MapError(err, "book", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author,
		&b.TotalCopies, &b.AvailableCopies,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
