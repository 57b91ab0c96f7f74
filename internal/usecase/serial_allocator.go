package usecase

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
)

// SerialAllocator produces serial numbers unused at the time of the check.
// The storage unique index stays the final authority.
type SerialAllocator interface {
	AllocateOne(ctx context.Context, storeID uuid.UUID) (*entity.SerialRecord, error)

	// AllocateBulk returns exactly quantity distinct serials.
	AllocateBulk(ctx context.Context, storeID uuid.UUID, quantity int) ([]*entity.SerialRecord, error)
}
