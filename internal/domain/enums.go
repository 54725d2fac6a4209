package domain

// LoanState represents the lifecycle state of a loan.
// The only legal transition is Active → Returned; Returned is terminal.
type LoanState string

const (
	LoanStateActive   LoanState = "ACTIVE"
	LoanStateReturned LoanState = "RETURNED"
)

func (s LoanState) String() string { return string(s) }

func (s LoanState) IsValid() bool {
	switch s {
	case LoanStateActive, LoanStateReturned:
		return true
	}
	return false
}

// NotificationKind identifies which lifecycle event a notification is about.
type NotificationKind string

const (
	NotificationKindBorrow  NotificationKind = "BORROW"
	NotificationKindReturn  NotificationKind = "RETURN"
	NotificationKindOverdue NotificationKind = "OVERDUE"
)

func (k NotificationKind) String() string { return string(k) }

func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationKindBorrow, NotificationKindReturn, NotificationKindOverdue:
		return true
	}
	return false
}

// NotificationState tracks which notification obligation is outstanding for
// a loan. A "PENDING" value means delivery is owed; the matching "SENT" value
// is set exactly once, after the transport accepted the message. This is the
// idempotency marker for the dispatcher.
type NotificationState string

const (
	NotificationStateNone           NotificationState = "NONE"
	NotificationStateBorrowPending  NotificationState = "BORROW_PENDING"
	NotificationStateBorrowSent     NotificationState = "BORROW_SENT"
	NotificationStateReturnPending  NotificationState = "RETURN_PENDING"
	NotificationStateReturnSent     NotificationState = "RETURN_SENT"
	NotificationStateOverduePending NotificationState = "OVERDUE_PENDING"
	NotificationStateOverdueSent    NotificationState = "OVERDUE_SENT"
)

func (s NotificationState) String() string { return string(s) }

func (s NotificationState) IsValid() bool {
	switch s {
	case NotificationStateNone,
		NotificationStateBorrowPending, NotificationStateBorrowSent,
		NotificationStateReturnPending, NotificationStateReturnSent,
		NotificationStateOverduePending, NotificationStateOverdueSent:
		return true
	}
	return false
}

// PendingStateFor returns the notification state a loan must be in for a job
// of the given kind to be deliverable.
func PendingStateFor(kind NotificationKind) NotificationState {
	switch kind {
	case NotificationKindBorrow:
		return NotificationStateBorrowPending
	case NotificationKindReturn:
		return NotificationStateReturnPending
	case NotificationKindOverdue:
		return NotificationStateOverduePending
	}
	return NotificationStateNone
}

// SentStateFor returns the notification state recorded after a job of the
// given kind has been delivered.
func SentStateFor(kind NotificationKind) NotificationState {
	switch kind {
	case NotificationKindBorrow:
		return NotificationStateBorrowSent
	case NotificationKindReturn:
		return NotificationStateReturnSent
	case NotificationKindOverdue:
		return NotificationStateOverdueSent
	}
	return NotificationStateNone
}
