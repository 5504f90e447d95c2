package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/config"
	"github.com/coworkflow/coworkflow/internal/logs"
	"github.com/coworkflow/coworkflow/internal/proxy"
)

// maxForwardBody caps the inbound body the gateway will buffer.
const maxForwardBody = 1 << 20

// Gateway relays authorised requests to the backend services.
type Gateway struct {
	Upstreams proxy.Registry
}

func NewGateway(r proxy.Registry) *Gateway {
	return &Gateway{Upstreams: r}
}

// Forward returns a handler that relays the request unchanged to service.
// It panics at route registration when service has no upstream.
func (g *Gateway) Forward(service string) echo.HandlerFunc {
	up := g.Upstreams.MustGet(service)
	return func(c echo.Context) error {
		return relay(c, up, c.Request().URL.Path)
	}
}

// CheckinCheckout serves both /checkin/:id and /checkout/:id; the action
// is taken from the inbound path.
func (g *Gateway) CheckinCheckout() echo.HandlerFunc {
	up := g.Upstreams.MustGet(config.Checkin)
	return func(c echo.Context) error {
		if _, ok := pathID(c, "id"); !ok {
			return badID(c)
		}
		action := "/checkin/"
		if strings.Contains(c.Request().URL.Path, "checkout") {
			action = "/checkout/"
		}
		return relay(c, up, action+c.Param("id"))
	}
}

func relay(c echo.Context, up *proxy.Upstream, path string) error {
	req := c.Request()
	var body []byte
	if isJSON(req) && req.Body != nil {
		b, err := io.ReadAll(http.MaxBytesReader(c.Response(), req.Body, maxForwardBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return errorJSON(c, http.StatusRequestEntityTooLarge, "Request body too large")
			}
			return errorJSON(c, http.StatusBadRequest, "Invalid request body")
		}
		body = b
	}

	resp, err := up.Do(req.Context(), proxy.Request{
		Method:   req.Method,
		Path:     path,
		RawQuery: req.URL.RawQuery,
		Header:   req.Header,
		Body:     body,
	})
	if err != nil {
		logs.For("gateway").WithError(err).
			WithField("request_id", req.Header.Get(echo.HeaderXRequestID)).
			Warn("forward failed")
		return errorJSON(c, http.StatusServiceUnavailable, "Service unavailable")
	}
	return c.Blob(resp.Status, echo.MIMEApplicationJSON, resp.Body)
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get(echo.HeaderContentType))
	return err == nil && mt == echo.MIMEApplicationJSON
}
