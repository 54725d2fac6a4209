package circulation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

var _ jobRepo = &jobRepoMock{}

type jobRepoMock struct {
	EnqueueFunc func(ctx context.Context, loanID uuid.UUID, kind domain.NotificationKind) error

	calls struct {
		Enqueue []struct {
			Ctx    context.Context
			LoanID uuid.UUID
			Kind   domain.NotificationKind
		}
	}
	lockEnqueue sync.RWMutex
}

func (mock *jobRepoMock) Enqueue(ctx context.Context, loanID uuid.UUID, kind domain.NotificationKind) error {
	if mock.EnqueueFunc == nil {
		panic("jobRepoMock.EnqueueFunc: method is nil but jobRepo.Enqueue was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		LoanID uuid.UUID
		Kind   domain.NotificationKind
	}{Ctx: ctx, LoanID: loanID, Kind: kind}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, loanID, kind)
}

func (mock *jobRepoMock) EnqueueCalls() []struct {
	Ctx    context.Context
	LoanID uuid.UUID
	Kind   domain.NotificationKind
} {
	mock.lockEnqueue.RLock()
	calls := mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}
