package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateTrackingQR generates a QR code image pointing at the public
	// tracking page for the given tracking number.
	GenerateTrackingQR(trackingNumber string) ([]byte, error)
}
