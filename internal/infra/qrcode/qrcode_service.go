package qrcode

import (
	"encoding/json"
	"fmt"

	"mirror/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const pairingType = "pairing"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// PairingData represents the payload encoded in a pairing QR code
type PairingData struct {
	GroupID string `json:"group_id"`
	Type    string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
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

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePairingQR generates a PNG QR code that a new device scans to join groupID
func (s *qrcodeService) GeneratePairingQR(groupID string) ([]byte, error) {
	if groupID == "" {
		return nil, fmt.Errorf("group ID is required")
	}

	jsonData, err := json.Marshal(PairingData{
		GroupID: groupID,
		Type:    pairingType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParsePairingQR parses scanned QR code data and returns the group ID
func (s *qrcodeService) ParsePairingQR(qrData string) (string, error) {
	var data PairingData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != pairingType {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	groupID, err := uuid.Parse(data.GroupID)
	if err != nil {
		return "", fmt.Errorf("failed to parse group ID: %w", err)
	}

	return groupID.String(), nil
}
