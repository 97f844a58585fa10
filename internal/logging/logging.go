package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Lines go to file when set, otherwise
// to fallback; a nil fallback disables logging. The returned close func
// releases the log file and is always safe to call.
func New(level, file string, fallback io.Writer) (zerolog.Logger, func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	var (
		out     io.Writer
		closeFn = noop
	)
	switch {
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}
		out, closeFn = f, f.Close
	case fallback != nil:
		out = zerolog.ConsoleWriter{Out: fallback, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), noop, nil
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), closeFn, nil
}

// ParseLevel accepts debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "", "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
}

func noop() error { return nil }
