package auth

import (
	"context"
	"sync"

	"github.com/heartmarshall/library-backend/internal/domain"
)

var _ memberRepo = &memberRepoMock{}

type memberRepoMock struct {
	CreateFunc     func(ctx context.Context, m *domain.Member) (*domain.Member, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Member, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			M   *domain.Member
		}
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
	}
	lockCreate     sync.RWMutex
	lockGetByEmail sync.RWMutex
}

func (mock *memberRepoMock) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	if mock.CreateFunc == nil {
		panic("memberRepoMock.CreateFunc: method is nil but memberRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   *domain.Member
	}{Ctx: ctx, M: m}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, m)
}

func (mock *memberRepoMock) CreateCalls() []struct {
	Ctx context.Context
	M   *domain.Member
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *memberRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	if mock.GetByEmailFunc == nil {
		panic("memberRepoMock.GetByEmailFunc: method is nil but memberRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *memberRepoMock) GetByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}
