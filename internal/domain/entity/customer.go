package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a store-scoped contact record.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	StoreID      uuid.UUID `json:"store_id"`
	CreatedBy    uuid.UUID `json:"created_by"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	GSTNumber    string    `json:"gst_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
