package proxy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coworkflow/coworkflow/internal/logs"
)

func init() { logs.Silence() }

func TestDoForwardsRequest(t *testing.T) {
	var got *http.Request
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	up := NewUpstream("spaces", srv.URL+"/", Settings{Timeout: time.Second})
	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer t")
	hdr.Set("Content-Type", "application/json")
	hdr.Set("Host", "gateway.local")
	hdr.Set("Proxy-Authorization", "Basic abc")
	hdr.Set("X-Request-Id", "req-1")

	resp, err := up.Do(context.Background(), Request{
		Method:   http.MethodPut,
		Path:     "/spaces/3",
		RawQuery: "a=1&b=2",
		Header:   hdr,
		Body:     []byte(`{"name":"x"}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.Status != http.StatusCreated || string(resp.Body) != `{"id":7}` {
		t.Fatalf("response = %d %s", resp.Status, resp.Body)
	}
	if got.Method != http.MethodPut || got.URL.Path != "/spaces/3" || got.URL.RawQuery != "a=1&b=2" {
		t.Fatalf("upstream saw %s %s?%s", got.Method, got.URL.Path, got.URL.RawQuery)
	}
	if gotBody != `{"name":"x"}` {
		t.Fatalf("body = %q", gotBody)
	}
	if got.Header.Get("Authorization") != "Bearer t" {
		t.Fatal("authorization header not forwarded")
	}
	if got.Host == "gateway.local" {
		t.Fatal("inbound Host header leaked upstream")
	}
	if got.Header.Get("Proxy-Authorization") != "" {
		t.Fatal("hop-by-hop header forwarded")
	}
	if got.Header.Get("X-Request-Id") != "req-1" {
		t.Fatal("request id not propagated")
	}
}

func TestDoMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>Traceback</html>"))
	}))
	defer srv.Close()

	_, err := NewUpstream("users", srv.URL, Settings{}).Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	var ue *UpstreamError
	if !errors.As(err, &ue) || !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want UpstreamError wrapping ErrMalformedResponse", err)
	}
	if ue.Service != "users" {
		t.Fatalf("service = %q", ue.Service)
	}
}

func TestDoUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewUpstream("pricing", url, Settings{Timeout: time.Second}).Do(context.Background(), Request{Method: http.MethodPost, Path: "/pricing/calc"})
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *UpstreamError", err)
	}
}

func TestDoTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewUpstream("checkin", srv.URL, Settings{Timeout: 50 * time.Millisecond}).Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("timeout not enforced")
	}
}

func TestDoIgnoresCallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resp, err := NewUpstream("spaces", srv.URL, Settings{Timeout: time.Second}).Do(ctx, Request{Method: http.MethodGet, Path: "/spaces"})
	if err != nil {
		t.Fatalf("forward aborted by caller cancellation: %v", err)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Fatalf("body = %s", resp.Body)
	}
}

func TestBreakerOpensAndShortCircuits(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	up := NewUpstream("analytics", srv.URL, Settings{MaxFailures: 2, OpenTimeout: time.Minute})
	for i := 0; i < 4; i++ {
		if _, err := up.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("upstream hit %d times, want 2 before the breaker opened", n)
	}
}

func TestUpstreamStatusIsRelayedNotFailed(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Space not found"}`))
	}))
	defer srv.Close()

	up := NewUpstream("spaces", srv.URL, Settings{MaxFailures: 1})
	for i := 0; i < 3; i++ {
		resp, err := up.Do(context.Background(), Request{Method: http.MethodGet, Path: "/spaces/9"})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if resp.Status != http.StatusNotFound {
			t.Fatalf("status = %d", resp.Status)
		}
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatal("4xx responses must not trip the breaker")
	}
}

func TestRegistryMustGet(t *testing.T) {
	r := NewRegistry(map[string]string{"users": "http://localhost:5001"}, Settings{})
	if r.MustGet("users").Name() != "users" {
		t.Fatal("wrong upstream")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustGet on unknown service should panic")
		}
	}()
	r.MustGet("nope")
}
