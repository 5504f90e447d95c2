package config

import (
	"fmt"
	"os"
	"strings"
)

// Backend service names.  They key the gateway route table, the default
// port table and the <NAME>_SERVICE_URL overrides.
const (
	Gateway       = "gateway"
	Users         = "users"
	Spaces        = "spaces"
	Reservations  = "reservations"
	Payments      = "payments"
	Pricing       = "pricing"
	Checkin       = "checkin"
	Notifications = "notifications"
	Financial     = "financial"
	Analytics     = "analytics"
)

// DefaultPorts lists the port each process listens on unless APP_PORT is set.
var DefaultPorts = map[string]int{
	Gateway:       8000,
	Users:         5001,
	Spaces:        5002,
	Reservations:  5003,
	Payments:      5004,
	Pricing:       5005,
	Checkin:       5006,
	Notifications: 5007,
	Financial:     5008,
	Analytics:     5009,
}

// Backends is the fixed set of services fronted by the gateway.
var Backends = []string{Users, Spaces, Reservations, Payments, Pricing, Checkin, Notifications, Financial, Analytics}

// ServiceURLs builds the backend base URL table.  In docker mode backends
// are addressed as http://ms-<name>:<port>; otherwise as localhost.  Each
// entry can be replaced with <NAME>_SERVICE_URL (e.g. USERS_SERVICE_URL).
func ServiceURLs(useDocker bool) map[string]string {
	out := make(map[string]string, len(Backends))
	for _, name := range Backends {
		host := "localhost"
		if useDocker {
			host = "ms-" + name
		}
		out[name] = fmt.Sprintf("http://%s:%d", host, DefaultPorts[name])
		if v := os.Getenv(strings.ToUpper(name) + "_SERVICE_URL"); v != "" {
			out[name] = strings.TrimRight(v, "/")
		}
	}
	return out
}
