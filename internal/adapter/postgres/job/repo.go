// Package job implements the notification job queue using PostgreSQL.
// The queue is durable: enqueue records delivery intent inside the database,
// and workers lease jobs with SKIP LOCKED so two workers never process the
// same job concurrently.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/domain"
)

// Repo provides notification job persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new job repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const enqueueSQL = `
INSERT INTO notification_jobs (loan_id, kind)
VALUES ($1, $2)
ON CONFLICT (loan_id, kind) DO NOTHING`

const leaseSQL = `
UPDATE notification_jobs
SET next_attempt_at = $2
WHERE id IN (
    SELECT id FROM notification_jobs
    WHERE next_attempt_at <= $1
    ORDER BY next_attempt_at
    LIMIT $3
    FOR UPDATE SKIP LOCKED
)
RETURNING id, loan_id, kind, attempts, next_attempt_at, created_at`

const rescheduleSQL = `
UPDATE notification_jobs
SET attempts = $2, next_attempt_at = $3
WHERE id = $1`

const deleteSQL = `DELETE FROM notification_jobs WHERE id = $1`

// Enqueue records delivery intent for (loan, kind). The unique constraint
// dedupes: re-enqueueing an already-queued job is a no-op, which keeps the
// "at most one notification attempt sequence per lifecycle event" guarantee.
func (r *Repo) Enqueue(ctx context.Context, loanID uuid.UUID, kind domain.NotificationKind) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, enqueueSQL, loanID, kind); err != nil {
		return postgres.MapError(err, "notification_job", loanID)
	}

	return nil
}

// Lease claims up to limit due jobs and makes them invisible to other workers
// until now+lease. A worker that dies mid-job simply lets the lease lapse and
// the job becomes due again.
func (r *Repo) Lease(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]domain.NotificationJob, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, leaseSQL, now, now.Add(lease), limit)
	if err != nil {
		return nil, postgres.MapError(err, "notification_job", uuid.Nil)
	}
	defer rows.Close()

	var jobs []domain.NotificationJob
	for rows.Next() {
		var j domain.NotificationJob
		if err := rows.Scan(&j.ID, &j.LoanID, &j.Kind, &j.Attempts, &j.NextAttemptAt, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan leased job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "notification_job", uuid.Nil)
	}

	return jobs, nil
}

// Reschedule records a failed attempt and sets the next delivery time.
func (r *Repo) Reschedule(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, rescheduleSQL, id, attempts, nextAttemptAt)
	if err != nil {
		return postgres.MapError(err, "notification_job", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification_job %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a finished job from the queue. Idempotent.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteSQL, id); err != nil {
		return postgres.MapError(err, "notification_job", id)
	}

	return nil
}
