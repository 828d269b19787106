package service

import (
	"time"

	"mirror/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// DeviceClaims defines the custom claims of a device access token.
type DeviceClaims struct {
	GroupID    string            `json:"grp"`
	DeviceType entity.DeviceType `json:"dty"`
	Type       string            `json:"type"`
	jwt.RegisteredClaims
}

// DeviceID returns the token subject.
func (c *DeviceClaims) DeviceID() string {
	return c.Subject
}

// TokenService defines the interface for issuing and validating device tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueDeviceToken creates an access token binding deviceID to groupID.
	IssueDeviceToken(groupID string, identity entity.DeviceIdentity) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*DeviceClaims, error)

	// TokenTTL returns the configured lifetime of device tokens.
	TokenTTL() time.Duration
}
