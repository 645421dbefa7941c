package utils

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger is the structured logging interface used across handlers and
// middleware. Services take *slog.Logger directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) Logger {
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

type loggerContextKey struct{}

// ContextLogger attaches a request-scoped logger (tagged with the request
// id) to both the gin context and the request context.
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := logger
		if requestID := c.GetString("request_id"); requestID != "" {
			requestLogger = logger.With("request_id", requestID)
		}

		c.Set("logger", requestLogger)
		ctx := context.WithValue(c.Request.Context(), loggerContextKey{}, requestLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetLogger returns the request-scoped logger from a gin context, falling
// back to a no-frills slog logger when middleware did not run.
func GetLogger(c *gin.Context) Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(Logger); ok {
			return logger
		}
	}
	return NewSlogLogger(slog.Default())
}

// LoggerFromContext extracts the request-scoped logger from a context.
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(Logger); ok {
		return logger
	}
	return NewSlogLogger(slog.Default())
}

// LoggerMiddleware logs one line per completed request.
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if query != "" {
			args = append(args, "query", query)
		}
		if requestID := c.GetString("request_id"); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request completed", args...)
		case c.Writer.Status() >= 400:
			logger.Warn("request completed", args...)
		default:
			logger.Info("request completed", args...)
		}
	}
}
