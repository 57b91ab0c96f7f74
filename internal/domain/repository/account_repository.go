// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrAccountNotFound is returned when an owner account does not exist.
	ErrAccountNotFound = errors.New("owner account not found")
	// ErrDuplicateEmail is returned when an email is already taken in its uniqueness scope.
	ErrDuplicateEmail = errors.New("email already exists")
)

// AccountRepository persists owner accounts.
type AccountRepository interface {
	// CreateAccount stores a new account. Returns ErrDuplicateEmail when the email is taken.
	CreateAccount(ctx context.Context, account *entity.OwnerAccount) error

	FindAccountByID(ctx context.Context, id uuid.UUID) (*entity.OwnerAccount, error)

	// FindAccountByEmail looks the email up case-insensitively.
	FindAccountByEmail(ctx context.Context, email string) (*entity.OwnerAccount, error)
}
