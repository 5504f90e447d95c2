package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recover turns a panic in a handler into a generic 500 JSON answer and
// logs the stack.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					requestLogger(c).WithField("panic", fmt.Sprint(r)).
						WithField("stack", string(debug.Stack())).
						Error("handler panicked")
					err = c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
				}
			}()
			return next(c)
		}
	}
}

// Common is the middleware stack every service mounts, outermost first.
func Common(service string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{RequestID(), AccessLog(service), Recover()}
}
