package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/coworkflow/coworkflow/internal/logs"
)

// AccessLog writes one logrus entry per request once the handler returns.
func AccessLog(service string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			res := c.Response()
			entry := logs.For(service).WithFields(logrus.Fields{
				"request_id": GetRequestID(c),
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     res.Status,
				"bytes":      res.Size,
				"remote_ip":  c.RealIP(),
				"duration":   time.Since(start).String(),
			})
			switch {
			case res.Status >= 500:
				entry.Error("request")
			case res.Status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		}
	}
}

func requestLogger(c echo.Context) *logrus.Entry {
	return logs.For("http").WithField("request_id", GetRequestID(c))
}
