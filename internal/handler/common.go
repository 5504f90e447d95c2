package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator { return &Validator{v: validator.New()} }

func (cv *Validator) Validate(i interface{}) error { return cv.v.Struct(i) }

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

func messageJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// bindValid decodes the JSON body into dst and runs struct validation.
// The returned message is suitable for a 400 answer.
func bindValid(c echo.Context, dst interface{}) (string, bool) {
	if err := c.Bind(dst); err != nil {
		return "Invalid request body", false
	}
	if err := c.Validate(dst); err != nil {
		return "Missing or invalid fields", false
	}
	return "", true
}

// pathID parses an integer path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil
}

// badID answers the 404 an unknown route would have produced.
func badID(c echo.Context) error {
	return errorJSON(c, http.StatusNotFound, "Not found")
}
