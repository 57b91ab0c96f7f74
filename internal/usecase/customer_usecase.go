package usecase

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
)

// CustomerInput carries customer fields.
type CustomerInput struct {
	CustomerName string
	Phone        string
	Email        string
	Address      string
	GSTNumber    string
}

// CustomerUsecase manages the caller's store customers.
type CustomerUsecase interface {
	Create(ctx context.Context, principal entity.Principal, input *CustomerInput) (*entity.Customer, error)
	List(ctx context.Context, principal entity.Principal, page entity.PageRequest) (*entity.Page[*entity.Customer], error)
	Get(ctx context.Context, principal entity.Principal, customerID uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, principal entity.Principal, customerID uuid.UUID, input *CustomerInput) (*entity.Customer, error)
}
