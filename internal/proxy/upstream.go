// Package proxy is the outbound HTTP side of the platform: one Upstream per
// backend service, each with its own deadline and circuit breaker.  It
// never retries.  Every transport failure, timeout, open breaker or
// non-JSON body comes back as an *UpstreamError so callers branch on the
// value instead of inspecting transport details.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/coworkflow/coworkflow/internal/logs"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 10 << 20

// ErrMalformedResponse means the upstream answered with a body that is not
// JSON.
var ErrMalformedResponse = errors.New("upstream returned a non-JSON body")

// UpstreamError wraps any failure to obtain a usable response from a
// backend.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s unavailable: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Settings tunes an Upstream.
type Settings struct {
	Timeout     time.Duration // per-call deadline, default 5s
	MaxFailures int           // consecutive failures that open the breaker, default 5
	OpenTimeout time.Duration // time the breaker stays open before probing, default 30s
	Client      *http.Client  // optional; a plain client is used when nil
}

// Request is an outbound call.  Path is appended to the upstream base URL.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Response is a fully read upstream response whose body is valid JSON.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Upstream is a single backend service.  It is safe for concurrent use.
type Upstream struct {
	name    string
	baseURL string
	timeout time.Duration
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewUpstream builds an Upstream for the service reachable at baseURL.
func NewUpstream(name, baseURL string, s Settings) *Upstream {
	if s.Timeout <= 0 {
		s.Timeout = 5 * time.Second
	}
	if s.MaxFailures <= 0 {
		s.MaxFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	client := s.Client
	if client == nil {
		client = &http.Client{}
	}
	maxFailures := uint32(s.MaxFailures)
	log := logs.For("proxy")
	return &Upstream{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: s.Timeout,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     s.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warnf("circuit breaker %q changed from %s to %s", name, from, to)
			},
		}),
	}
}

// Name returns the service name the upstream was built with.
func (u *Upstream) Name() string { return u.name }

// Do performs req once.  The call is detached from ctx's cancellation, so
// a client that hangs up does not abort a forward already in flight; only
// the upstream deadline does.
func (u *Upstream) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	defer cancel()

	out, err := u.breaker.Execute(func() (interface{}, error) {
		return u.roundTrip(ctx, req)
	})
	if err != nil {
		return nil, &UpstreamError{Service: u.name, Err: err}
	}
	return out.(*Response), nil
}

func (u *Upstream) roundTrip(ctx context.Context, req Request) (*Response, error) {
	target := u.baseURL + req.Path
	if req.RawQuery != "" {
		target += "?" + req.RawQuery
	}
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	copyHeaders(httpReq.Header, req.Header)

	resp, err := u.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, ErrMalformedResponse
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: raw}, nil
}

// headers that describe the inbound hop and must not be replayed upstream
var skipHeaders = map[string]bool{
	"Host":                true,
	"Content-Length":      true,
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

func copyHeaders(dst, src http.Header) {
	for k, vals := range src {
		if skipHeaders[http.CanonicalHeaderKey(k)] {
			continue
		}
		for _, v := range vals {
			dst.Add(k, v)
		}
	}
}
