package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

var _ jobRepo = &jobRepoMock{}

type jobRepoMock struct {
	LeaseFunc      func(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]domain.NotificationJob, error)
	RescheduleFunc func(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Lease []struct {
			Ctx   context.Context
			Now   time.Time
			Lease time.Duration
			Limit int
		}
		Reschedule []struct {
			Ctx           context.Context
			ID            uuid.UUID
			Attempts      int
			NextAttemptAt time.Time
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockLease      sync.RWMutex
	lockReschedule sync.RWMutex
	lockDelete     sync.RWMutex
}

func (mock *jobRepoMock) Lease(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]domain.NotificationJob, error) {
	if mock.LeaseFunc == nil {
		panic("jobRepoMock.LeaseFunc: method is nil but jobRepo.Lease was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Now   time.Time
		Lease time.Duration
		Limit int
	}{Ctx: ctx, Now: now, Lease: lease, Limit: limit}
	mock.lockLease.Lock()
	mock.calls.Lease = append(mock.calls.Lease, callInfo)
	mock.lockLease.Unlock()
	return mock.LeaseFunc(ctx, now, lease, limit)
}

func (mock *jobRepoMock) LeaseCalls() []struct {
	Ctx   context.Context
	Now   time.Time
	Lease time.Duration
	Limit int
} {
	mock.lockLease.RLock()
	calls := mock.calls.Lease
	mock.lockLease.RUnlock()
	return calls
}

func (mock *jobRepoMock) Reschedule(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time) error {
	if mock.RescheduleFunc == nil {
		panic("jobRepoMock.RescheduleFunc: method is nil but jobRepo.Reschedule was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		ID            uuid.UUID
		Attempts      int
		NextAttemptAt time.Time
	}{Ctx: ctx, ID: id, Attempts: attempts, NextAttemptAt: nextAttemptAt}
	mock.lockReschedule.Lock()
	mock.calls.Reschedule = append(mock.calls.Reschedule, callInfo)
	mock.lockReschedule.Unlock()
	return mock.RescheduleFunc(ctx, id, attempts, nextAttemptAt)
}

func (mock *jobRepoMock) RescheduleCalls() []struct {
	Ctx           context.Context
	ID            uuid.UUID
	Attempts      int
	NextAttemptAt time.Time
} {
	mock.lockReschedule.RLock()
	calls := mock.calls.Reschedule
	mock.lockReschedule.RUnlock()
	return calls
}

func (mock *jobRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("jobRepoMock.DeleteFunc: method is nil but jobRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *jobRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
