package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting
// test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedMember creates a member with a placeholder password hash.
func SeedMember(t *testing.T, pool *pgxpool.Pool) domain.Member {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	m := domain.Member{
		Name:         "Member " + suffix,
		Email:        "member-" + suffix + "@example.com",
		PasswordHash: "$2a$04$testtesttesttesttesttesttesttesttesttesttesttesttest",
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO members (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		m.Name, m.Email, m.PasswordHash,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed member: %v", err)
	}

	return m
}

// SeedBook creates a book with the given copy counts.
func SeedBook(t *testing.T, pool *pgxpool.Pool, total, available int) domain.Book {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	b := domain.Book{
		Title:           "Book " + suffix,
		Author:          "Author " + suffix,
		TotalCopies:     total,
		AvailableCopies: available,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO books (title, author, total_copies, available_copies)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		b.Title, b.Author, b.TotalCopies, b.AvailableCopies,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed book: %v", err)
	}

	return b
}

// SeedLoan creates a loan in the given state with the given creation time.
func SeedLoan(t *testing.T, pool *pgxpool.Pool, bookID, memberID uuid.UUID,
	state domain.LoanState, notifState domain.NotificationState, createdAt time.Time,
) domain.Loan {
	t.Helper()
	ctx := context.Background()

	l := domain.Loan{
		BookID:            bookID,
		MemberID:          memberID,
		State:             state,
		NotificationState: notifState,
		CreatedAt:         createdAt,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO loans (book_id, member_id, state, notification_state, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, updated_at`,
		l.BookID, l.MemberID, l.State, l.NotificationState, l.CreatedAt,
	).Scan(&l.ID, &l.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed loan: %v", err)
	}

	return l
}
