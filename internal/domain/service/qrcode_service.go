package service

// QRCodeService generates warranty verification QR codes.
type QRCodeService interface {
	// VerificationURL is the public page a scanned code opens for the serial.
	VerificationURL(serialNumber string) string

	// GenerateVerificationQR renders the verification URL as a PNG.
	GenerateVerificationQR(serialNumber string) ([]byte, error)
}
