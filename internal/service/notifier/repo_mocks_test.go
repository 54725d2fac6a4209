package notifier

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

var _ loanRepo = &loanRepoMock{}

type loanRepoMock struct {
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	AdvanceNotificationFunc func(ctx context.Context, id uuid.UUID, expected, next domain.NotificationState) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		AdvanceNotification []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Expected domain.NotificationState
			Next     domain.NotificationState
		}
	}
	lockGetByID             sync.RWMutex
	lockAdvanceNotification sync.RWMutex
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

func (mock *loanRepoMock) AdvanceNotification(ctx context.Context, id uuid.UUID, expected, next domain.NotificationState) error {
	if mock.AdvanceNotificationFunc == nil {
		panic("loanRepoMock.AdvanceNotificationFunc: method is nil but loanRepo.AdvanceNotification was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Expected domain.NotificationState
		Next     domain.NotificationState
	}{Ctx: ctx, ID: id, Expected: expected, Next: next}
	mock.lockAdvanceNotification.Lock()
	mock.calls.AdvanceNotification = append(mock.calls.AdvanceNotification, callInfo)
	mock.lockAdvanceNotification.Unlock()
	return mock.AdvanceNotificationFunc(ctx, id, expected, next)
}

func (mock *loanRepoMock) AdvanceNotificationCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Expected domain.NotificationState
	Next     domain.NotificationState
} {
	mock.lockAdvanceNotification.RLock()
	calls := mock.calls.AdvanceNotification
	mock.lockAdvanceNotification.RUnlock()
	return calls
}

var _ memberRepo = &memberRepoMock{}

type memberRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Member, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *memberRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	if mock.GetByIDFunc == nil {
		panic("memberRepoMock.GetByIDFunc: method is nil but memberRepo.GetByID was just called")
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

func (mock *memberRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

var _ bookRepo = &bookRepoMock{}

type bookRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *bookRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if mock.GetByIDFunc == nil {
		panic("bookRepoMock.GetByIDFunc: method is nil but bookRepo.GetByID was just called")
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

func (mock *bookRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

var _ mailer = &mailerMock{}

type mailerMock struct {
	SendFunc func(ctx context.Context, to, subject, body string) error

	calls struct {
		Send []struct {
			Ctx     context.Context
			To      string
			Subject string
			Body    string
		}
	}
	lockSend sync.RWMutex
}

func (mock *mailerMock) Send(ctx context.Context, to, subject, body string) error {
	if mock.SendFunc == nil {
		panic("mailerMock.SendFunc: method is nil but mailer.Send was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		To      string
		Subject string
		Body    string
	}{Ctx: ctx, To: to, Subject: subject, Body: body}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, to, subject, body)
}

func (mock *mailerMock) SendCalls() []struct {
	Ctx     context.Context
	To      string
	Subject string
	Body    string
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}
