package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/util"

	"go.uber.org/fx"
)

// WarrantyArtifactsParams holds the collaborators that render and store
// warranty documents, injected by Fx.
type WarrantyArtifactsParams struct {
	fx.In

	QRCode       service.QRCodeService
	Certificates service.CertificateGenerator
	Storage      service.ArtifactStorage
	StoreRepo    repository.StoreRepository
	WarrantyRepo repository.WarrantyRepository
	Logger       *slog.Logger
}

// warrantyArtifacts produces the QR code and the PDF certificate of a
// persisted warranty. Every failure is logged and leaves its URL empty.
type warrantyArtifacts struct {
	qrcode       service.QRCodeService
	certificates service.CertificateGenerator
	storage      service.ArtifactStorage
	storeRepo    repository.StoreRepository
	warrantyRepo repository.WarrantyRepository
	logger       *slog.Logger
	now          func() time.Time
}

func newWarrantyArtifacts(params WarrantyArtifactsParams) *warrantyArtifacts {
	return &warrantyArtifacts{
		qrcode:       params.QRCode,
		certificates: params.Certificates,
		storage:      params.Storage,
		storeRepo:    params.StoreRepo,
		warrantyRepo: params.WarrantyRepo,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// attach generates both artifacts, then writes the URLs back onto the warranty.
func (a *warrantyArtifacts) attach(ctx context.Context, warranty *entity.Warranty, item *entity.ProductItem, customer *entity.Customer) {
	logger := requestLogger(ctx, a.logger).With(
		slog.String("warranty_id", warranty.ID.String()),
		slog.String("serial_number", item.SerialNumber),
	)
	stamp := a.now().Unix()
	serial := util.SafeKeySegment(item.SerialNumber)

	png, err := a.qrcode.GenerateVerificationQR(item.SerialNumber)
	if err != nil {
		logger.Warn("Warranty artifact generation failed", slog.String("artifact", "qr_code"), slog.Any("error", err))
	} else {
		url, err := a.storage.Put(ctx, fmt.Sprintf("qr/qr-%s-%d.png", serial, stamp), png, "image/png")
		if err != nil {
			logger.Warn("Warranty artifact upload failed", slog.String("artifact", "qr_code"), slog.Any("error", err))
		} else {
			warranty.QRCodeURL = url
		}
	}

	if url, err := a.certificate(ctx, warranty, item, customer, png, serial, stamp); err != nil {
		logger.Warn("Warranty artifact generation failed", slog.String("artifact", "certificate"), slog.Any("error", err))
	} else {
		warranty.WarrantyPDFURL = url
	}

	if warranty.QRCodeURL == "" && warranty.WarrantyPDFURL == "" {
		return
	}
	if err := a.warrantyRepo.UpdateArtifacts(ctx, warranty.ID, warranty.QRCodeURL, warranty.WarrantyPDFURL); err != nil {
		logger.Warn("Failed to save warranty artifact urls", slog.Any("error", err))
	}
}

func (a *warrantyArtifacts) certificate(ctx context.Context, warranty *entity.Warranty, item *entity.ProductItem, customer *entity.Customer, qrPNG []byte, serial string, stamp int64) (string, error) {
	store, err := a.storeRepo.FindStoreByID(ctx, warranty.StoreID)
	if err != nil {
		return "", err
	}

	doc, err := a.certificates.GenerateWarrantyCertificate(ctx, &service.WarrantyCertificateData{
		Store:     store,
		Customer:  customer,
		Template:  item.Template,
		Batch:     item.Batch,
		Item:      item,
		Warranty:  warranty,
		QRCodePNG: qrPNG,
	})
	if err != nil {
		return "", err
	}

	return a.storage.Put(ctx, fmt.Sprintf("warranties/warranty-%s-%d.pdf", serial, stamp), doc, "application/pdf")
}

// warrantyEnd is the start plus the batch warranty period in calendar months.
func warrantyEnd(start time.Time, item *entity.ProductItem) time.Time {
	months := entity.DefaultWarrantyPeriodMonths
	if item.Batch != nil && item.Batch.WarrantyPeriodMonths > 0 {
		months = item.Batch.WarrantyPeriodMonths
	}

	return util.AddCalendarMonths(start, months)
}
