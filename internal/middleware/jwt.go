package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/utils"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// signed with secret.  A missing, malformed or expired token ends the
// request with 401 {"error":"Unauthorized"}; the reason is only logged.
// On success the user id, role and full claims are stored in the context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := utils.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			claims, err := utils.VerifyToken(secret, raw)
			if err != nil {
				requestLogger(c).WithError(err).Debug("bearer token rejected")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxClaims, claims)
			return next(c)
		}
	}
}
