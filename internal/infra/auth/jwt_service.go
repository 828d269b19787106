// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"mirror/config"
	"mirror/internal/domain/constants"
	"mirror/internal/domain/entity"
	"mirror/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Secret key for signing device tokens.
	ttl    time.Duration // Time-to-live for device tokens.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Device == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	ttl := 30 * 24 * time.Hour
	if cfg.DeviceToken != nil && cfg.DeviceToken.TTL > 0 {
		ttl = cfg.DeviceToken.TTL
	}

	return &jwtService{
		secret: cfg.SecretKey.Device,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// IssueDeviceToken creates a signed token binding the device to its group.
func (s *jwtService) IssueDeviceToken(groupID string, identity entity.DeviceIdentity) (string, error) {
	if groupID == "" || identity.DeviceID == "" {
		return "", errors.New("group id and device id are required")
	}

	now := s.now()
	claims := &service.DeviceClaims{
		GroupID:    groupID,
		DeviceType: identity.DeviceType,
		Type:       constants.TokenTypeDevice,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.DeviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign device token")
	}

	return signed, nil
}

// ValidateToken checks signature, expiry and token type.
func (s *jwtService) ValidateToken(tokenString string) (*service.DeviceClaims, error) {
	claims := &service.DeviceClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	if claims.Type != constants.TokenTypeDevice {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}
	if claims.Subject == "" || claims.GroupID == "" {
		return nil, errors.New("token is missing device or group")
	}

	return claims, nil
}

// TokenTTL returns the configured lifetime of device tokens.
func (s *jwtService) TokenTTL() time.Duration {
	return s.ttl
}
