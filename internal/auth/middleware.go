package auth

import (
	"net/http"
	"strings"

	apperrors "filevault/pkg/errors"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	verifier *Verifier
}

func NewMiddleware(verifier *Verifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// RequireAuth rejects requests without a valid bearer token and stores
// the verified subject and claims on the request context.
func (m *Middleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			claims, err := m.verifier.Verify(token)
			if err != nil {
				c.Logger().Warnf("token verification failed: %v", err)
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

// GetUserID returns the verified subject identifier for the request.
func GetUserID(c echo.Context) (string, error) {
	userID := c.Get(ContextKeyUserID)
	if userID == nil {
		return "", apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", apperrors.InternalServer(msgInvalidUserIDCtx, nil)
	}

	return id, nil
}

// GetClaims returns the full verified claim set, when present.
func GetClaims(c echo.Context) *Claims {
	claims, _ := c.Get(ContextKeyClaims).(*Claims)
	return claims
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
