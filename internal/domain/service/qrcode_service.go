package service

// QRCodeService defines the interface for pairing QR code generation and parsing
type QRCodeService interface {
	// GeneratePairingQR generates a PNG QR code a new device scans to join groupID
	GeneratePairingQR(groupID string) ([]byte, error)

	// ParsePairingQR parses scanned QR code data and returns the group ID
	ParsePairingQR(qrData string) (string, error)
}
