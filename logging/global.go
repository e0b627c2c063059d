package logging

import (
	"context"
	"log/slog"
	"os"
)

// LoggingService wraps the configured logger and its rotating writer
type LoggingService struct {
	Logger   *slog.Logger
	rotating *RotatingLogger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger with defaults; an empty
// logDir means console only
func InitLogger(logDir string) {
	InitLoggerWithOptions(logDir, 4, 100*1024*1024, "info")
}

// InitLoggerWithOptions initializes the global logger instance
func InitLoggerWithOptions(logDir string, retentionWeeks int, maxFileSize int64, level string) {
	logger, rotating := SetupLogger(logDir, retentionWeeks, maxFileSize, level)
	DefaultLoggingService = &LoggingService{
		Logger:   logger,
		rotating: rotating,
	}
	slog.SetDefault(logger)
}

// Shutdown closes the rotating log file, if one is open
func Shutdown() {
	if DefaultLoggingService != nil && DefaultLoggingService.rotating != nil {
		_ = DefaultLoggingService.rotating.Close()
	}
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	logWith(slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...any) {
	logWith(slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...any) {
	logWith(slog.LevelError, msg, args...)
}

func Debug(msg string, args ...any) {
	logWith(slog.LevelDebug, msg, args...)
}

func logWith(level slog.Level, msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		// Fallback to console logger if not initialized
		fallback := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		fallback.Log(context.Background(), level, msg, args...)
		return
	}
	DefaultLoggingService.Logger.Log(context.Background(), level, msg, args...)
}
