// Package loan implements the Loan repository using PostgreSQL.
// State transitions are conditional single-statement updates so that
// concurrent writers cannot both succeed.
package loan

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// Repo provides loan persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new loan repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var loanColumns = []string{
	"id", "book_id", "member_id", "state", "notification_state",
	"created_at", "closed_at", "updated_at",
}

const createSQL = `
INSERT INTO loans (book_id, member_id, state, notification_state)
VALUES ($1, $2, $3, $4)
RETURNING id, book_id, member_id, state, notification_state, created_at, closed_at, updated_at`

const getByIDSQL = `
SELECT id, book_id, member_id, state, notification_state, created_at, closed_at, updated_at
FROM loans
WHERE id = $1`

const markReturnedSQL = `
UPDATE loans
SET state = $2, closed_at = $3, notification_state = $4, updated_at = now()
WHERE id = $1 AND state = $5
RETURNING id, book_id, member_id, state, notification_state, created_at, closed_at, updated_at`

const getStateSQL = `SELECT state FROM loans WHERE id = $1`

const advanceNotificationSQL = `
UPDATE loans
SET notification_state = $3, updated_at = now()
WHERE id = $1 AND notification_state = $2`

const claimOverdueSQL = `
UPDATE loans
SET notification_state = $1, updated_at = now()
WHERE state = $2
  AND created_at < $3
  AND notification_state NOT IN ($4, $5)
RETURNING id`

// Create inserts a new loan in the given state.
// Called inside the borrow transaction, right after the book reservation.
func (r *Repo) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, createSQL,
		loan.BookID, loan.MemberID, loan.State, loan.NotificationState)

	stored, err := scanLoan(row)
	if err != nil {
		return nil, postgres.MapError(err, "loan", uuid.Nil)
	}

	return stored, nil
}

// GetByID returns a loan by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	stored, err := scanLoan(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "loan", id)
	}

	return stored, nil
}

// ListActiveByMember returns the member's active loans ordered by created_at
// ascending, so pagination and tests see a deterministic order.
func (r *Repo) ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Loan, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.
		Select(loanColumns...).
		From("loans").
		Where(sq.Eq{"member_id": memberID, "state": domain.LoanStateActive}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "loan", uuid.Nil)
	}

	loans := make([]domain.Loan, 0)
	if err := pgxscan.ScanAll(&loans, rows); err != nil {
		return nil, fmt.Errorf("scan loans: %w", err)
	}

	return loans, nil
}

// MarkReturned transitions a loan Active → Returned. The state guard in the
// UPDATE makes the transition single-fire: of two concurrent returns exactly
// one matches the row. Returns domain.ErrAlreadyReturned when the loan exists
// but is no longer active, domain.ErrNotFound when it does not exist.
func (r *Repo) MarkReturned(ctx context.Context, id uuid.UUID, closedAt time.Time) (*domain.Loan, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, markReturnedSQL,
		id, domain.LoanStateReturned, closedAt,
		domain.NotificationStateReturnPending, domain.LoanStateActive)

	stored, err := scanLoan(row)
	if err == nil {
		return stored, nil
	}

	// Zero rows: distinguish missing loan from an already-returned one.
	var state domain.LoanState
	if scanErr := q.QueryRow(ctx, getStateSQL, id).Scan(&state); scanErr != nil {
		return nil, postgres.MapError(scanErr, "loan", id)
	}
	if state == domain.LoanStateReturned {
		return nil, fmt.Errorf("loan %s: %w", id, domain.ErrAlreadyReturned)
	}

	return nil, postgres.MapError(err, "loan", id)
}

// AdvanceNotification performs a compare-and-set on notification_state.
// Returns domain.ErrConflict when the current state does not match expected;
// the dispatcher treats that as "someone else already handled this job".
func (r *Repo) AdvanceNotification(ctx context.Context, id uuid.UUID, expected, next domain.NotificationState) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, advanceNotificationSQL, id, expected, next)
	if err != nil {
		return postgres.MapError(err, "loan", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s notification %s→%s: %w", id, expected, next, domain.ErrConflict)
	}

	return nil
}

// ClaimOverdue atomically flags every active loan created before cutoff that
// has not yet entered the overdue notification flow, and returns the claimed
// loan IDs. Because claiming and selecting are one statement, two concurrent
// sweeps cannot claim the same loan twice.
func (r *Repo) ClaimOverdue(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, claimOverdueSQL,
		domain.NotificationStateOverduePending, domain.LoanStateActive, cutoff,
		domain.NotificationStateOverduePending, domain.NotificationStateOverdueSent)
	if err != nil {
		return nil, postgres.MapError(err, "loan", uuid.Nil)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan claimed loan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "loan", uuid.Nil)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (*domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(
		&l.ID, &l.BookID, &l.MemberID,
		&l.State, &l.NotificationState,
		&l.CreatedAt, &l.ClosedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
