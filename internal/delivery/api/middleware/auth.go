package middleware

import (
	"strings"

	"mirror/internal/delivery/api/response"
	deliverycontext "mirror/internal/delivery/context"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/domain/service"
	"mirror/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	callerContextKey = "caller"

	// accessTokenQueryParam carries the token on websocket upgrades, where headers are not settable from browsers.
	accessTokenQueryParam = "access_token"
)

// AuthMiddleware validates device tokens and binds the caller to the request.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects requests without a valid device token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return response.Unauthorized(c, domainerrors.CodeInvalidToken, "Authorization token is missing")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, domainerrors.CodeInvalidToken, domainerrors.ErrInvalidToken.Message())
		}

		caller := usecase.DeviceCaller{GroupID: claims.GroupID, DeviceID: claims.DeviceID()}
		c.Set(callerContextKey, caller)

		ctx := deliverycontext.WithDevice(c.Request().Context(), deliverycontext.Device{
			GroupID:  caller.GroupID,
			DeviceID: caller.DeviceID,
		})
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return c.QueryParam(accessTokenQueryParam)
}

// GetCaller returns the authenticated device set by Authenticate.
func GetCaller(c echo.Context) (usecase.DeviceCaller, bool) {
	caller, ok := c.Get(callerContextKey).(usecase.DeviceCaller)

	return caller, ok
}
