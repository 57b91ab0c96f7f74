package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	"warranty/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance. baseURL is the
// public site hosting the /verify/{serial} page.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// VerificationURL returns the page a scanned code opens.
func (s *qrcodeService) VerificationURL(serialNumber string) string {
	return s.baseURL + "/verify/" + url.PathEscape(serialNumber)
}

// GenerateVerificationQR renders the verification URL as a PNG.
func (s *qrcodeService) GenerateVerificationQR(serialNumber string) ([]byte, error) {
	if serialNumber == "" {
		return nil, fmt.Errorf("serial number is required")
	}

	qrCode, err := qrcode.New(s.VerificationURL(serialNumber), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
