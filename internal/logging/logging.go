// Package logging wraps zerolog with the component field Nexarch attaches
// to its log lines. The tenant is not added here; the HTTP request logger
// adds it to each request line once auth has resolved it.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Setup configures the global zerolog logger's level and output writer.
// debug=true switches to a human-readable console writer; production
// deployments log structured JSON to stdout.
func Setup(level string, debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	var out zerolog.ConsoleWriter
	if debug {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
		zerolog.DefaultContextLogger = &zerolog.Logger{}
		logger := zerolog.New(out).With().Timestamp().Caller().Logger()
		zerolog.DefaultContextLogger = &logger
		return
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}

// For returns a component-scoped logger.
func For(component string) zerolog.Logger {
	base := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if zerolog.DefaultContextLogger != nil {
		base = *zerolog.DefaultContextLogger
	}
	return base.With().Str("component", component).Logger()
}
