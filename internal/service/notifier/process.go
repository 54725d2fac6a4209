package notifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// processJob attempts delivery for a single leased job.
//
// Outcomes:
//   - delivered: loan notification state advanced Pending → Sent, job deleted
//   - stale (loan already past the Pending state): job deleted, nothing sent
//   - loan/member/book missing: job deleted, logged
//   - transport failure: job rescheduled with doubled delay, or dropped with
//     a fatal log once attempts are exhausted (loan stays Pending for
//     operator follow-up)
func (s *Service) processJob(ctx context.Context, job domain.NotificationJob) {
	log := s.log.With(
		slog.String("job_id", job.ID.String()),
		slog.String("loan_id", job.LoanID.String()),
		slog.String("kind", job.Kind.String()))

	loan, err := s.loans.GetByID(ctx, job.LoanID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.WarnContext(ctx, "loan gone, dropping notification job")
			s.deleteJob(ctx, log, job.ID)
			return
		}
		log.ErrorContext(ctx, "load loan for notification", slog.Any("error", err))
		s.retryLater(ctx, log, job)
		return
	}

	// Idempotency gate: a job is only deliverable while its loan still owes
	// this exact notification.
	pending := domain.PendingStateFor(job.Kind)
	if loan.NotificationState != pending {
		log.InfoContext(ctx, "notification already handled, dropping job",
			slog.String("notification_state", loan.NotificationState.String()))
		s.deleteJob(ctx, log, job.ID)
		return
	}

	member, err := s.members.GetByID(ctx, loan.MemberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.WarnContext(ctx, "member gone, dropping notification job")
			s.deleteJob(ctx, log, job.ID)
			return
		}
		log.ErrorContext(ctx, "load member for notification", slog.Any("error", err))
		s.retryLater(ctx, log, job)
		return
	}

	book, err := s.books.GetByID(ctx, loan.BookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.WarnContext(ctx, "book gone, dropping notification job")
			s.deleteJob(ctx, log, job.ID)
			return
		}
		log.ErrorContext(ctx, "load book for notification", slog.Any("error", err))
		s.retryLater(ctx, log, job)
		return
	}

	subject, body := s.compose(job.Kind, loan, member, book)

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	err = s.mail.Send(sendCtx, member.Email, subject, body)
	cancel()
	if err != nil {
		log.WarnContext(ctx, "notification delivery failed", slog.Any("error", err))
		s.retryLater(ctx, log, job)
		return
	}

	// The transport accepted the message: advance Pending → Sent exactly
	// once. Losing the CAS means another worker already recorded delivery,
	// which is fine, the job is finished either way.
	err = s.loans.AdvanceNotification(ctx, loan.ID, pending, domain.SentStateFor(job.Kind))
	if err != nil && !errors.Is(err, domain.ErrConflict) {
		log.ErrorContext(ctx, "record notification delivery", slog.Any("error", err))
		// The email went out but the marker write failed. Keep the job; the
		// next attempt re-checks the gate before sending again.
		s.retryLater(ctx, log, job)
		return
	}

	s.deleteJob(ctx, log, job.ID)
	log.InfoContext(ctx, "notification delivered",
		slog.String("member_id", member.ID.String()))
}

// retryLater reschedules the job with exponential backoff, or drops it after
// the attempt budget is spent.
func (s *Service) retryLater(ctx context.Context, log *slog.Logger, job domain.NotificationJob) {
	attempts := job.Attempts + 1
	if attempts >= s.cfg.MaxAttempts {
		log.ErrorContext(ctx, "notification attempts exhausted, giving up",
			slog.Int("attempts", attempts))
		s.deleteJob(ctx, log, job.ID)
		return
	}

	delay := s.cfg.BackoffBase << (attempts - 1) // 60s, 120s, 240s, ...
	if err := s.jobs.Reschedule(ctx, job.ID, attempts, time.Now().Add(delay)); err != nil {
		log.ErrorContext(ctx, "reschedule notification job", slog.Any("error", err))
	}
}

func (s *Service) deleteJob(ctx context.Context, log *slog.Logger, id uuid.UUID) {
	if err := s.jobs.Delete(ctx, id); err != nil {
		log.ErrorContext(ctx, "delete notification job", slog.Any("error", err))
	}
}
