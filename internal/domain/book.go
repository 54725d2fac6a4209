package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry with a fixed number of physical copies.
// AvailableCopies is mutated only through the book repository's
// Reserve/Release operations, always inside a loan transaction; the invariant
// 0 <= AvailableCopies <= TotalCopies is additionally enforced by a database
// check constraint.
type Book struct {
	ID              uuid.UUID
	Title           string
	Author          string
	TotalCopies     int
	AvailableCopies int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Member represents a registered library member. Credential material is
// opaque to the circulation core; only the auth service reads PasswordHash.
type Member struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
