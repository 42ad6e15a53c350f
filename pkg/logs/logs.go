package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Alijeyrad/contact_relay/config"
)

// New builds a logger from config, fanning out to stdout and a rotated file.
func New(cfg *config.Config) *slog.Logger {
	return slog.New(NewHandler(cfg, Writer(cfg))).With(
		slog.String("service", cfg.Observability.ServiceName),
		slog.String("version", cfg.Observability.ServiceVersion),
		slog.String("env", cfg.Server.Environment),
	)
}

// Writer returns the combined log destination. Stdout is used when nothing
// else is configured so logs never vanish.
func Writer(cfg *config.Config) io.Writer {
	var writers []io.Writer

	if cfg.Logging.Stdout || !cfg.Logging.File.Enabled {
		writers = append(writers, os.Stdout)
	}

	if cfg.Logging.File.Enabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Logging.File.Path,
			MaxSize:    cfg.Logging.File.MaxSizeMB,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAge:     cfg.Logging.File.MaxAgeDays,
			Compress:   cfg.Logging.File.Compress,
		})
	}

	if len(writers) == 1 {
		return writers[0]
	}
	return io.MultiWriter(writers...)
}

// NewHandler picks JSON outside development or when asked for explicitly.
func NewHandler(cfg *config.Config, w io.Writer) slog.Handler {
	isDev := cfg.IsDevelopment()
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Logging.Level),
		AddSource: isDev,
	}
	if strings.EqualFold(cfg.Logging.Format, "json") || !isDev {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
