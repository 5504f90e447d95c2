package config

import (
	"testing"
	"time"
)

func TestServiceURLs(t *testing.T) {
	local := ServiceURLs(false)
	if got := local[Users]; got != "http://localhost:5001" {
		t.Fatalf("users = %q", got)
	}
	if got := local[Analytics]; got != "http://localhost:5009" {
		t.Fatalf("analytics = %q", got)
	}
	if len(local) != len(Backends) {
		t.Fatalf("got %d backends", len(local))
	}

	docker := ServiceURLs(true)
	if got := docker[Checkin]; got != "http://ms-checkin:5006" {
		t.Fatalf("checkin = %q", got)
	}
}

func TestServiceURLOverride(t *testing.T) {
	t.Setenv("PRICING_SERVICE_URL", "http://pricing.internal:9000/")
	if got := ServiceURLs(true)[Pricing]; got != "http://pricing.internal:9000" {
		t.Fatalf("pricing = %q", got)
	}
}

func TestAddr(t *testing.T) {
	if got := (Config{}).Addr(Gateway); got != ":8000" {
		t.Fatalf("gateway addr = %q", got)
	}
	if got := (Config{}).Addr(Notifications); got != ":5007" {
		t.Fatalf("notifications addr = %q", got)
	}
	if got := (Config{Port: "9999"}).Addr(Spaces); got != ":9999" {
		t.Fatalf("override addr = %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("USE_DOCKER", "TRUE")
	t.Setenv("UPSTREAM_TIMEOUT", "750ms")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://broker/")
	cfg := Load()
	if !cfg.UseDocker || cfg.Services[Users] != "http://ms-users:5001" {
		t.Fatalf("docker mode not applied: %+v", cfg.Services)
	}
	if cfg.UpstreamTimeout != 750*time.Millisecond {
		t.Fatalf("timeout = %v", cfg.UpstreamTimeout)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.BreakerMaxFailures != 5 || cfg.BreakerTimeout != 30*time.Second {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.AMQPURL != "amqp://broker/" {
		t.Fatalf("amqp url = %q", cfg.AMQPURL)
	}
}

func TestRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("capacity = %d", cfg.Capacity)
	}
	if cfg.TTL != 10*time.Second {
		t.Fatalf("ttl = %v", cfg.TTL)
	}
}

func TestParseMethods(t *testing.T) {
	m := parseMethods(" get, Head ,,")
	if !m["GET"] || !m["HEAD"] || len(m) != 2 {
		t.Fatalf("methods = %v", m)
	}
}
