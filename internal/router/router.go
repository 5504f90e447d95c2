// Package router wires handlers and middleware onto Echo instances, one
// Register function per process.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/handler"
	"github.com/coworkflow/coworkflow/internal/middleware"
)

// New returns an Echo instance with the validator and the common
// middleware stack installed, plus GET /health.
func New(service string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.Common(service)...)
	e.GET("/health", handler.Health)
	return e
}

// methods accepted on the gateway's read-write prefixes
var crud = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
