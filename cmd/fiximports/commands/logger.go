package commands

import (
	"io"
	"log/slog"

	"github.com/Sumatoshi-tech/fiximports/pkg/config"
)

// newLogger builds the command logger from config and the verbosity flags.
// Verbose wins over the configured level; quiet raises it to error.
func newLogger(w io.Writer, cfg config.LoggingConfig, verbose, quiet bool) *slog.Logger {
	level := parseLevel(cfg.Level)

	if verbose {
		level = slog.LevelDebug
	}

	if quiet {
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
