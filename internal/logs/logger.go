// Package logs owns the process-wide logrus logger.  Every service binary
// calls Init once at startup; packages that log before Init (tests, for
// example) get a sane stdout logger at info level.
package logs

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the application logger.  It is never nil.
var Logger = logrus.New()

// Options controls logger initialisation.
type Options struct {
	Level   string // trace|debug|info|warning|error|fatal
	Format  string // text|json
	Service string // added as a "service" field on every entry
}

// Init configures the global Logger and returns an entry pre-tagged with
// the service name.
func Init(opts Options) *logrus.Entry {
	l := logrus.New()
	l.SetLevel(parseLevel(opts.Level))
	if opts.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetOutput(os.Stdout)
	Logger = l
	return For(opts.Service)
}

// For returns an entry scoped to a component name.
func For(component string) *logrus.Entry {
	if component == "" {
		return logrus.NewEntry(Logger)
	}
	return Logger.WithField("service", component)
}

// Silence routes all output to io.Discard.  Used by tests.
func Silence() {
	Logger.SetOutput(io.Discard)
}

func parseLevel(s string) logrus.Level {
	switch s {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warning", "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
