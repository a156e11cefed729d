package logger

import (
	"context"
	"log/slog"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/config"
	appContext "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/jwt"
)

// ContextLogger provides context-aware logging functionality
type ContextLogger struct {
	*CoreLogger
}

func NewContextLogger(cfg config.LoggerConfig) (*ContextLogger, error) {
	coreLogger, err := NewCoreLogger(cfg)
	if err != nil {
		return nil, err
	}

	return &ContextLogger{CoreLogger: coreLogger}, nil
}

// FromContext returns the request logger stored in ctx, enriched with the
// trace and user ids found there.
func (cl *ContextLogger) FromContext(ctx context.Context) *CoreLogger {
	var base *slog.Logger
	if ctxLogger := appContext.GetLogger(ctx); ctxLogger != nil {
		base = ctxLogger
	} else {
		base = cl.CoreLogger.Logger
	}

	logger := &CoreLogger{Logger: base, config: cl.config}
	return logger.
		WithTraceID(appContext.GetTraceID(ctx)).
		WithUserID(extractUserID(ctx))
}

// SetInContext sets the logger in the context
func (cl *ContextLogger) SetInContext(ctx context.Context, logger *CoreLogger) context.Context {
	appContext.SetLogger(ctx, logger.Logger)
	return ctx
}

func extractUserID(ctx context.Context) string {
	if claims, ok := ctx.Value(jwt.UserClaimKey).(*jwt.UserClaims); ok && claims != nil {
		return claims.UserID
	}

	return appContext.GetUserID(ctx)
}

var globalContextLogger *ContextLogger

// InitGlobalLogger initializes the global context logger
func InitGlobalLogger(cfg config.LoggerConfig) error {
	logger, err := NewContextLogger(cfg)
	if err != nil {
		return err
	}
	globalContextLogger = logger
	return nil
}

// GetGlobalLogger returns the global logger, creating an info-level stdout
// logger on first use if InitGlobalLogger was never called.
func GetGlobalLogger() *ContextLogger {
	if globalContextLogger == nil {
		logger, err := NewContextLogger(config.LoggerConfig{Level: "info", Output: "stdout"})
		if err != nil {
			panic("Failed to create default logger: " + err.Error())
		}
		globalContextLogger = logger
	}
	return globalContextLogger
}

func FromContext(ctx context.Context) *CoreLogger {
	return GetGlobalLogger().FromContext(ctx)
}

func SetInContext(ctx context.Context, logger *CoreLogger) context.Context {
	return GetGlobalLogger().SetInContext(ctx, logger)
}

func DebugContext(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Debug(msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Info(msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Warn(msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Error(msg, args...)
}

func InfoContextWithFields(ctx context.Context, msg string, fields map[string]interface{}) {
	FromContext(ctx).InfoWithFields(msg, fields)
}

func WarnContextWithFields(ctx context.Context, msg string, fields map[string]interface{}) {
	FromContext(ctx).WarnWithFields(msg, fields)
}

func ErrorContextWithFields(ctx context.Context, msg string, fields map[string]interface{}) {
	FromContext(ctx).ErrorWithFields(msg, fields)
}

// Global convenience functions for code paths without a request context.

func Info(msg string, args ...interface{}) {
	GetGlobalLogger().CoreLogger.Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	GetGlobalLogger().CoreLogger.Warn(msg, args...)
}

func Error(msg string, args ...interface{}) {
	GetGlobalLogger().CoreLogger.Error(msg, args...)
}

func Fatal(msg string, args ...interface{}) {
	GetGlobalLogger().CoreLogger.Fatal(msg, args...)
}

func InfoWithFields(msg string, fields map[string]interface{}) {
	GetGlobalLogger().CoreLogger.InfoWithFields(msg, fields)
}
