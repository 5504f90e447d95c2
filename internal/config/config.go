// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/coworkflow/coworkflow/internal/logs"
)

// Config holds all runtime configuration values shared by the gateway and
// the backend services.  Each field corresponds to an environment variable;
// a process only reads the fields relevant to the service it runs.
type Config struct {
	Env        string        // application environment (e.g. "dev", "prod")
	Port       string        // HTTP port override; empty means the service default
	JWTSecret  string        // secret used to sign and verify bearer tokens
	TokenTTL   time.Duration // lifetime of tokens issued at login
	BcryptCost int           // bcrypt cost for password hashing

	UseDocker          bool              // address backends by container hostname instead of localhost
	Services           map[string]string // backend name -> base URL
	UpstreamTimeout    time.Duration     // per-forward deadline
	BreakerMaxFailures int               // consecutive transport failures before a breaker opens
	BreakerTimeout     time.Duration     // how long an open breaker stays open

	DBUser string // payments database user; payments use memory when DBHost is empty
	DBPass string // payments database password (optional)
	DBHost string // payments database host
	DBPort string // payments database port
	DBName string // payments database name

	AMQPURL string // RabbitMQ URL; empty disables event publishing

	SMTPHost string // SMTP relay for e-mail notifications; empty means log only
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	LogLevel  string
	LogFormat string
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is applied first when it
// exists.  JWT_SECRET is required; everything else has a default.
func Load() Config {
	_ = godotenv.Load() // optional; real env vars win over the file

	useDocker := envBool("USE_DOCKER", false)
	return Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       os.Getenv("APP_PORT"),
		JWTSecret:  must("JWT_SECRET"),
		TokenTTL:   envDur("TOKEN_TTL", 24*time.Hour),
		BcryptCost: envInt("BCRYPT_COST", 10),

		UseDocker:          useDocker,
		Services:           ServiceURLs(useDocker),
		UpstreamTimeout:    envDur("UPSTREAM_TIMEOUT", 5*time.Second),
		BreakerMaxFailures: envInt("BREAKER_MAX_FAILURES", 5),
		BreakerTimeout:     envDur("BREAKER_TIMEOUT", 30*time.Second),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: os.Getenv("DB_HOST"),
		DBPort: envStr("DB_PORT", "3306"),
		DBName: envStr("DB_NAME", "payments"),

		AMQPURL: amqpURL(),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: envInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: envStr("SMTP_FROM", "no-reply@coworkflow.local"),

		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "text"),
	}
}

// Addr returns the listen address for the named service.  APP_PORT wins
// over the per-service default.
func (c Config) Addr(service string) string {
	if c.Port != "" {
		return ":" + c.Port
	}
	return ":" + strconv.Itoa(DefaultPorts[service])
}

// amqpURL mirrors the lookup order used by the queue consumer: RABBITMQ_URL
// first, then AMQP_URL.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logs.For("config").Fatalf("missing required env var: %s", key)
	}
	return v
}
