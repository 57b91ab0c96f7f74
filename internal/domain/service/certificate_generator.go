package service

import (
	"context"
	"time"

	"warranty/internal/domain/entity"
)

// WarrantyCertificateData is everything printed on a warranty certificate.
type WarrantyCertificateData struct {
	Store    *entity.Store
	Customer *entity.Customer
	Template *entity.ProductTemplate
	Batch    *entity.Batch
	Item     *entity.ProductItem
	Warranty *entity.Warranty
	// QRCodePNG is embedded when present.
	QRCodePNG []byte
}

// SerialSheetData is everything printed on a batch serial number sheet.
type SerialSheetData struct {
	Store       *entity.Store
	Template    *entity.ProductTemplate
	Batch       *entity.Batch
	Items       []*entity.ProductItem
	GeneratedAt time.Time
}

// CertificateGenerator renders PDF documents. Callers decide how to react to
// failures; warranty issuance logs them and continues without the document.
type CertificateGenerator interface {
	GenerateWarrantyCertificate(ctx context.Context, data *WarrantyCertificateData) ([]byte, error)
	GenerateSerialSheet(ctx context.Context, data *SerialSheetData) ([]byte, error)
}
