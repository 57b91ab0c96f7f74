package entity

import (
	"time"

	"github.com/google/uuid"
)

// WarrantyStatus is the lifecycle state of a warranty.
type WarrantyStatus string

const (
	WarrantyStatusActive  WarrantyStatus = "active"
	WarrantyStatusExpired WarrantyStatus = "expired"
	WarrantyStatusClaimed WarrantyStatus = "claimed"
	WarrantyStatusVoid    WarrantyStatus = "void"
)

// String returns the string representation of the WarrantyStatus.
func (s WarrantyStatus) String() string {
	return string(s)
}

// IsValid checks if the WarrantyStatus is a valid value.
func (s WarrantyStatus) IsValid() bool {
	switch s {
	case WarrantyStatusActive, WarrantyStatusExpired, WarrantyStatusClaimed, WarrantyStatusVoid:
		return true
	default:
		return false
	}
}

// Warranty binds one product item to one customer inside a store.
// (ProductItemID, CustomerID, StoreID) is unique.
type Warranty struct {
	ID             uuid.UUID      `json:"id"`
	ProductItemID  uuid.UUID      `json:"product_id"`
	CustomerID     uuid.UUID      `json:"customer_id"`
	StoreID        uuid.UUID      `json:"store_id"`
	CreatedBy      *uuid.UUID     `json:"created_by,omitempty"` // Nil for partner registrations.
	WarrantyStart  time.Time      `json:"warranty_start"`
	WarrantyEnd    time.Time      `json:"warranty_end"`
	Status         WarrantyStatus `json:"status"`
	QRCodeURL      string         `json:"qr_code_url,omitempty"`
	WarrantyPDFURL string         `json:"warranty_pdf_url,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Product  *ProductItem `json:"product,omitempty"`
	Customer *Customer    `json:"customer,omitempty"`
}

// EffectiveStatus reports an active warranty past its end date as expired.
func (w *Warranty) EffectiveStatus(now time.Time) WarrantyStatus {
	if w.Status == WarrantyStatusActive && now.After(w.WarrantyEnd) {
		return WarrantyStatusExpired
	}

	return w.Status
}

// WarrantyVerification is the public view of a serial's warranty, served to
// anyone scanning the certificate QR code. It carries no customer data.
type WarrantyVerification struct {
	SerialNumber  string         `json:"serial_number"`
	Brand         string         `json:"brand"`
	ProductModel  string         `json:"product_model"`
	Category      string         `json:"category,omitempty"`
	StoreName     string         `json:"store_name"`
	StoreAddress  string         `json:"store_address,omitempty"`
	StorePhone    string         `json:"store_phone,omitempty"`
	WarrantyStart time.Time      `json:"warranty_start"`
	WarrantyEnd   time.Time      `json:"warranty_end"`
	Status        WarrantyStatus `json:"status"`
	DaysRemaining int            `json:"days_remaining"`
}
