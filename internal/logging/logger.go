package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup initializes the global slog logger with JSON output to stdout, teed
// to a rotating file when logFile is set. The returned handler is meant to be
// combined with a DBHandler once the database is up.
func Setup(logFile string) slog.Handler {
	handler := slog.NewJSONHandler(output(logFile), &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	return handler
}

func output(logFile string) io.Writer {
	if logFile == "" {
		return os.Stdout
	}
	if !strings.HasSuffix(logFile, ".log") {
		logFile += ".log"
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // megabytes
		MaxBackups: 10,
		LocalTime:  false, // false -> use UTC
		Compress:   true,
	})
}
