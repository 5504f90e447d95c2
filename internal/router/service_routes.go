package router

import (
	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/handler"
)

// The backends trust the gateway for authentication, except /users/me
// which decodes the bearer token itself.

func RegisterUsers(e *echo.Echo, h *handler.UsersHandler) {
	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/login", h.Login)
	e.GET("/users/me", h.Me)
	e.GET("/admin/users", h.List)
}

func RegisterSpaces(e *echo.Echo, h *handler.SpacesHandler) {
	e.GET("/spaces", h.List)
	e.POST("/spaces", h.Create)
	e.GET("/spaces/:id", h.Get)
	e.PUT("/spaces/:id", h.Update)
	e.DELETE("/spaces/:id", h.Delete)
	e.GET("/spaces/:id/availability", h.Availability)
}

func RegisterReservations(e *echo.Echo, h *handler.ReservationsHandler) {
	e.POST("/reservations", h.Create)
	e.GET("/reservations/:id", h.Get)
	e.GET("/reservations/user/:user_id", h.ListByUser)
	e.DELETE("/reservations/:id", h.Cancel)
	e.GET("/admin/reservations", h.ListAll)
}

func RegisterPayments(e *echo.Echo, h *handler.PaymentsHandler) {
	e.POST("/payments/charge", h.Charge)
	e.POST("/payments/refund", h.Refund)
}

func RegisterPricing(e *echo.Echo) {
	e.POST("/pricing/calc", handler.CalculatePrice)
}

func RegisterCheckin(e *echo.Echo, h *handler.CheckinHandler) {
	e.POST("/checkin/:id", h.CheckIn)
	e.POST("/checkout/:id", h.CheckOut)
}

func RegisterNotifications(e *echo.Echo, h *handler.NotificationsHandler) {
	e.POST("/notify/email", h.Email)
	e.POST("/notify/sms", h.SMS)
	e.POST("/notify/push", h.Push)
}
