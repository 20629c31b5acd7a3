// Package logger provides the global structured logger and HTTP tracing
// transport for sdofetch.
package logger

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/motemen/go-loghttp"
)

// Logger is the global logger instance
var Logger *slog.Logger

var level = new(slog.LevelVar)

// Init initializes the global logger.
// It sets the log level to Debug if SDOFETCH_DEBUG is set.
func Init() {
	level.Set(slog.LevelInfo)
	if os.Getenv("SDOFETCH_DEBUG") != "" {
		level.Set(slog.LevelDebug)
	}

	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	loghttp.DefaultTransport.LogRequest = func(req *http.Request) {
		Debug("HTTP request",
			"method", req.Method,
			"url", req.URL.String(),
		)
	}

	loghttp.DefaultTransport.LogResponse = func(resp *http.Response) {
		Debug("HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL.String(),
			"status_code", resp.StatusCode,
			"content_length", resp.ContentLength,
		)
	}
}

func init() {
	Init()
}

// SetLevel adjusts the minimum log level from its configured name
// (debug, info, warn, error). SDOFETCH_DEBUG still forces debug, and
// unknown names leave the level unchanged.
func SetLevel(name string) {
	if os.Getenv("SDOFETCH_DEBUG") != "" {
		return
	}
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}
}

// Transport returns the tracing round tripper used for all outbound HTTP.
func Transport() http.RoundTripper {
	return loghttp.DefaultTransport
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
