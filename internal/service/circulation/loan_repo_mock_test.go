package circulation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

var _ loanRepo = &loanRepoMock{}

type loanRepoMock struct {
	CreateFunc             func(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	ListActiveByMemberFunc func(ctx context.Context, memberID uuid.UUID) ([]domain.Loan, error)
	MarkReturnedFunc       func(ctx context.Context, id uuid.UUID, closedAt time.Time) (*domain.Loan, error)

	calls struct {
		Create []struct {
			Ctx  context.Context
			Loan *domain.Loan
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListActiveByMember []struct {
			Ctx      context.Context
			MemberID uuid.UUID
		}
		MarkReturned []struct {
			Ctx      context.Context
			ID       uuid.UUID
			ClosedAt time.Time
		}
	}
	lockCreate             sync.RWMutex
	lockGetByID            sync.RWMutex
	lockListActiveByMember sync.RWMutex
	lockMarkReturned       sync.RWMutex
}

func (mock *loanRepoMock) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	if mock.CreateFunc == nil {
		panic("loanRepoMock.CreateFunc: method is nil but loanRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Loan *domain.Loan
	}{Ctx: ctx, Loan: loan}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, loan)
}

func (mock *loanRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Loan *domain.Loan
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *loanRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	if mock.GetByIDFunc == nil {
		panic("loanRepoMock.GetByIDFunc: method is nil but loanRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *loanRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *loanRepoMock) ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Loan, error) {
	if mock.ListActiveByMemberFunc == nil {
		panic("loanRepoMock.ListActiveByMemberFunc: method is nil but loanRepo.ListActiveByMember was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		MemberID uuid.UUID
	}{Ctx: ctx, MemberID: memberID}
	mock.lockListActiveByMember.Lock()
	mock.calls.ListActiveByMember = append(mock.calls.ListActiveByMember, callInfo)
	mock.lockListActiveByMember.Unlock()
	return mock.ListActiveByMemberFunc(ctx, memberID)
}

func (mock *loanRepoMock) ListActiveByMemberCalls() []struct {
	Ctx      context.Context
	MemberID uuid.UUID
} {
	mock.lockListActiveByMember.RLock()
	calls := mock.calls.ListActiveByMember
	mock.lockListActiveByMember.RUnlock()
	return calls
}

func (mock *loanRepoMock) MarkReturned(ctx context.Context, id uuid.UUID, closedAt time.Time) (*domain.Loan, error) {
	if mock.MarkReturnedFunc == nil {
		panic("loanRepoMock.MarkReturnedFunc: method is nil but loanRepo.MarkReturned was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		ClosedAt time.Time
	}{Ctx: ctx, ID: id, ClosedAt: closedAt}
	mock.lockMarkReturned.Lock()
	mock.calls.MarkReturned = append(mock.calls.MarkReturned, callInfo)
	mock.lockMarkReturned.Unlock()
	return mock.MarkReturnedFunc(ctx, id, closedAt)
}

func (mock *loanRepoMock) MarkReturnedCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	ClosedAt time.Time
} {
	mock.lockMarkReturned.RLock()
	calls := mock.calls.MarkReturned
	mock.lockMarkReturned.RUnlock()
	return calls
}
