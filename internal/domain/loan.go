package domain

import (
	"time"

	"github.com/google/uuid"
)

// Loan records one member borrowing one copy of a book. A loan is created
// only by a successful borrow and is never deleted; the single legal
// transition is Active → Returned.
type Loan struct {
	ID                uuid.UUID
	BookID            uuid.UUID
	MemberID          uuid.UUID
	State             LoanState
	NotificationState NotificationState
	CreatedAt         time.Time
	ClosedAt          *time.Time
	UpdatedAt         time.Time
}

// IsActive reports whether the loan is still open.
func (l *Loan) IsActive() bool { return l.State == LoanStateActive }

// DueDate returns the date the book must be returned by.
func (l *Loan) DueDate(period time.Duration) time.Time {
	return l.CreatedAt.Add(period)
}

// IsOverdue reports whether an active loan has exceeded the loan period.
// Returned loans are never overdue.
func (l *Loan) IsOverdue(now time.Time, period time.Duration) bool {
	return l.State == LoanStateActive && now.After(l.DueDate(period))
}

// NotificationJob is one pending delivery in the dispatcher's durable queue.
// At most one job exists per (loan, kind); Attempts counts failed delivery
// attempts so far and NextAttemptAt gates when the job becomes leasable.
type NotificationJob struct {
	ID            uuid.UUID
	LoanID        uuid.UUID
	Kind          NotificationKind
	Attempts      int
	NextAttemptAt time.Time
	CreatedAt     time.Time
}
