package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/utils"
)

// UserID returns the authenticated user id stored by JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok
}

// userKey identifies the caller for rate limiting.  The limiter runs ahead
// of route-level JWTAuth, so a verified bearer token is decoded here when
// the context has no user yet.  Anything else is "anon".
func userKey(c echo.Context, secret string) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	if secret == "" {
		return "anon"
	}
	raw := utils.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	claims, err := utils.VerifyToken(secret, raw)
	if err != nil {
		return "anon"
	}
	return strconv.FormatUint(claims.UserID, 10)
}
