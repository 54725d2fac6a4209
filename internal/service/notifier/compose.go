package notifier

import (
	"fmt"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// compose builds the subject and plain-text body for a lifecycle email.
func (s *Service) compose(kind domain.NotificationKind, loan *domain.Loan, member *domain.Member, book *domain.Book) (subject, body string) {
	switch kind {
	case domain.NotificationKindBorrow:
		due := loan.DueDate(s.loanPeriod)
		subject = fmt.Sprintf("Book Borrowed: %s", book.Title)
		body = fmt.Sprintf(
			"Hello %s,\n\nYou have borrowed %q by %s.\nPlease return it by %s.\n\nHappy reading!",
			member.Name, book.Title, book.Author, due.Format("January 2, 2006"))
	case domain.NotificationKindReturn:
		subject = fmt.Sprintf("Book Returned: %s", book.Title)
		body = fmt.Sprintf(
			"Hello %s,\n\nThank you for returning %q by %s.\n\nSee you next time!",
			member.Name, book.Title, book.Author)
	case domain.NotificationKindOverdue:
		due := loan.DueDate(s.loanPeriod)
		subject = fmt.Sprintf("Overdue Book: %s", book.Title)
		body = fmt.Sprintf(
			"Hello %s,\n\nThe book %q by %s was due on %s.\nPlease return it as soon as possible.",
			member.Name, book.Title, book.Author, due.Format("January 2, 2006"))
	}
	return subject, body
}
