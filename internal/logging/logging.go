package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// logger fields
const (
	PackageField   = "pkg"
	ActionField    = "action"
	ClientField    = "client"
	RequestIDField = "request_id"
	StateField     = "state"
	MutationField  = "mutation"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New builds the root logger. Levels follow zerolog names (debug, info, warn, error, disabled).
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var out io.Writer
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	case FormatJSON:
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", format)
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(parsed), nil
}

func ParseLevel(raw string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return zerolog.WarnLevel, nil
	}

	level, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", raw, err)
	}

	return level, nil
}

// ForPackage returns a sub-logger tagged with pkg=name.
func ForPackage(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str(PackageField, name).Logger()
}
