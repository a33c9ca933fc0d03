package logging

import (
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// Setup installs the process-wide slog logger: text on stderr, plus a JSON
// file handler when logFile is set. Returns a cleanup function that closes
// the log file.
func Setup(logFile string, debug bool) func() error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	if logFile == "" {
		slog.SetDefault(slog.New(stderrHandler))
		return func() error { return nil }
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.SetDefault(slog.New(stderrHandler))
		slog.Error("Failed to open log file, using stderr only", "file", logFile, "error", err)
		return func() error { return nil }
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(slogmulti.Fanout(stderrHandler, fileHandler)))

	return func() error {
		return file.Close()
	}
}
