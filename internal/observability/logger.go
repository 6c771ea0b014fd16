package observability

import (
	"log/slog"
	"os"

	"github.com/VIVEK9902/weather-app/internal/config"
)

// NewLogger builds the process-wide slog logger from config.
// LOG_FORMAT selects json or text handlers; LOG_LEVEL falls back to info
// on unrecognized values.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
