package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/config"
)

// LogLevel represents the available log levels
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// OutputType represents the output destination type
type OutputType string

const (
	OutputStdout OutputType = "stdout"
	OutputFile   OutputType = "file"
)

// CoreLogger wraps slog with printf-style helpers.
type CoreLogger struct {
	*slog.Logger
	config config.LoggerConfig
}

// NewCoreLogger creates a JSON logger writing to stdout or to cfg.Path.
func NewCoreLogger(cfg config.LoggerConfig) (*CoreLogger, error) {
	level, err := parseLogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level '%s': %w", cfg.Level, err)
	}

	var writer io.Writer
	switch parseOutputType(cfg.Output) {
	case OutputFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file path is required when output is set to 'file'")
		}
		file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file '%s': %w", cfg.Path, err)
		}
		writer = file
	default:
		writer = os.Stdout
	}

	return newCoreLoggerWithWriter(writer, level, cfg), nil
}

func newCoreLoggerWithWriter(w io.Writer, level slog.Level, cfg config.LoggerConfig) *CoreLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &CoreLogger{
		Logger: slog.New(handler),
		config: cfg,
	}
}

// attributes remembers which keys were already attached to a derived logger,
// so enriching the same request logger twice does not duplicate fields.
var attributes = struct {
	sync.Mutex
	byLogger map[*slog.Logger]map[string]bool
}{byLogger: make(map[*slog.Logger]map[string]bool)}

func checkLoggerAttribute(logger *slog.Logger, key string) bool {
	attributes.Lock()
	defer attributes.Unlock()
	return attributes.byLogger[logger][key]
}

func markLoggerAttribute(logger *slog.Logger, key string) {
	attributes.Lock()
	defer attributes.Unlock()
	if attributes.byLogger[logger] == nil {
		attributes.byLogger[logger] = make(map[string]bool)
	}
	attributes.byLogger[logger][key] = true
}

func (l *CoreLogger) withAttribute(key, value string) *CoreLogger {
	if value == "" || checkLoggerAttribute(l.Logger, key) {
		return l
	}

	newLogger := l.Logger.With(key, value)
	markLoggerAttribute(newLogger, key)

	return &CoreLogger{
		Logger: newLogger,
		config: l.config,
	}
}

// WithTraceID creates a new logger instance with the specified trace ID
func (l *CoreLogger) WithTraceID(traceID string) *CoreLogger {
	return l.withAttribute("trace_id", traceID)
}

// WithUserID creates a new logger instance with the specified user ID
func (l *CoreLogger) WithUserID(userID string) *CoreLogger {
	return l.withAttribute("user_id", userID)
}

// WithFields creates a new logger instance with additional fields
func (l *CoreLogger) WithFields(fields map[string]interface{}) *CoreLogger {
	logger := l.Logger
	for key, value := range fields {
		logger = logger.With(key, value)
	}

	return &CoreLogger{
		Logger: logger,
		config: l.config,
	}
}

func (l *CoreLogger) Debug(msg string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(msg, args...))
}

func (l *CoreLogger) Info(msg string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(msg, args...))
}

func (l *CoreLogger) Warn(msg string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(msg, args...))
}

func (l *CoreLogger) Error(msg string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(msg, args...))
}

func (l *CoreLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.WithFields(fields).Logger.Debug(msg)
}

func (l *CoreLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.WithFields(fields).Logger.Info(msg)
}

func (l *CoreLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.WithFields(fields).Logger.Warn(msg)
}

func (l *CoreLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.WithFields(fields).Logger.Error(msg)
}

// Fatal logs a fatal error and exits
func (l *CoreLogger) Fatal(msg string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf("FATAL: "+msg, args...))
	os.Exit(1)
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level: %s", level)
	}
}

func parseOutputType(output string) OutputType {
	if strings.ToLower(strings.TrimSpace(output)) == string(OutputFile) {
		return OutputFile
	}
	return OutputStdout
}
