package bootstrap

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/boolean-maybe/tock/config"
)

// ParseLogLevel maps a logging.level value to a slog level. Unknown values
// mean error.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// ConfigureLogging installs a text handler on w as the default logger.
func ConfigureLogging(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// InitLogging sends logs to the log file while the TUI owns the terminal.
// When the file cannot be opened logging is discarded. The returned closer
// closes the file.
func InitLogging(cfg *config.Config) (slog.Level, io.Closer) {
	level := ParseLogLevel(cfg.Logging.Level)

	path := config.GetLogFile()
	//nolint:gosec // G302: 0644 is appropriate for a log file
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		ConfigureLogging(io.Discard, level)
		return level, io.NopCloser(nil)
	}

	ConfigureLogging(f, level)
	slog.Info("logging initialized", "file", path, "level", level.String())
	return level, f
}

// InitCLILogging sends logs to stderr for one-shot commands.
func InitCLILogging(cfg *config.Config) slog.Level {
	level := ParseLogLevel(cfg.Logging.Level)
	ConfigureLogging(os.Stderr, level)
	return level
}
