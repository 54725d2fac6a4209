// Package catalog implements book catalog management.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// bookRepo defines the book repository interface needed by catalog service.
type bookRepo interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
}

// Service implements catalog operations.
type Service struct {
	log   *slog.Logger
	books bookRepo
}

// NewService creates a new catalog service instance.
func NewService(logger *slog.Logger, books bookRepo) *Service {
	return &Service{
		log:   logger.With("service", "catalog"),
		books: books,
	}
}

// CreateBook registers a new title. Every copy of a new book starts out
// available, so available_copies is initialized to total_copies.
func (s *Service) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.Create(ctx, &domain.Book{
		Title:           input.Title,
		Author:          input.Author,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.CreateBook: %w", err)
	}

	s.log.InfoContext(ctx, "book created",
		slog.String("book_id", book.ID.String()),
		slog.String("title", book.Title))

	return book, nil
}

// GetBook returns a book by ID. Returns ErrNotFound if it does not exist.
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetBook: %w", err)
	}
	return book, nil
}
