package catalog

import "github.com/heartmarshall/library-backend/internal/domain"

// CreateBookInput holds parameters for registering a new title.
type CreateBookInput struct {
	Title       string
	Author      string
	TotalCopies int
}

// Validate validates the create book input.
func (i CreateBookInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 500 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if i.Author == "" {
		errs = append(errs, domain.FieldError{Field: "author", Message: "required"})
	} else if len(i.Author) > 200 {
		errs = append(errs, domain.FieldError{Field: "author", Message: "too long"})
	}

	if i.TotalCopies < 1 {
		errs = append(errs, domain.FieldError{Field: "total_copies", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
