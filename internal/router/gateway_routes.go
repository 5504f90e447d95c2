package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/config"
	"github.com/coworkflow/coworkflow/internal/handler"
	"github.com/coworkflow/coworkflow/internal/middleware"
	"github.com/coworkflow/coworkflow/internal/model"
)

// GatewayOptions carries the optional edge middleware.
type GatewayOptions struct {
	RateLimit echo.MiddlewareFunc // applied to every route; nil to skip
	Cache     echo.MiddlewareFunc // applied to public space reads; nil to skip
}

// RegisterGateway installs the gateway route table.  Each route is
// public, bearer (JWTAuth) or admin (JWTAuth + RequireRole).  Every route forwards to exactly one backend.
func RegisterGateway(e *echo.Echo, gw *handler.Gateway, jwtSecret string, opts GatewayOptions) {
	if opts.RateLimit != nil {
		e.Use(opts.RateLimit)
	}
	cache := opts.Cache
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	bearer := middleware.JWTAuth(jwtSecret)
	admin := middleware.RequireRole(model.RoleAdmin)

	// public
	e.Match([]string{http.MethodGet, http.MethodPost}, "/auth/*", gw.Forward(config.Users))
	e.GET("/spaces", gw.Forward(config.Spaces), cache)
	e.GET("/spaces/*", gw.Forward(config.Spaces), cache)
	e.Match([]string{http.MethodPost, http.MethodPut, http.MethodDelete}, "/spaces/*", gw.Forward(config.Spaces))
	e.POST("/pricing/*", gw.Forward(config.Pricing))
	e.POST("/notify/*", gw.Forward(config.Notifications))

	// bearer
	e.Match(crud, "/users/*", gw.Forward(config.Users), bearer)
	e.Match([]string{http.MethodGet, http.MethodPost}, "/reservations", gw.Forward(config.Reservations), bearer)
	e.Match(crud, "/reservations/*", gw.Forward(config.Reservations), bearer)
	e.POST("/payments/*", gw.Forward(config.Payments), bearer)
	e.POST("/checkin/:id", gw.CheckinCheckout(), bearer)
	e.POST("/checkout/:id", gw.CheckinCheckout(), bearer)
	e.GET("/analytics/*", gw.Forward(config.Analytics), bearer)
	e.GET("/financial/*", gw.Forward(config.Financial), bearer)

	// admin
	e.POST("/spaces", gw.Forward(config.Spaces), bearer, admin)
	a := e.Group("/admin", bearer, admin)
	a.GET("/users", gw.Forward(config.Users))
	a.GET("/reservations", gw.Forward(config.Reservations))
}
