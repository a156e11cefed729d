package context

import (
	"context"
	"log/slog"
	"os"

	"gorm.io/gorm"
)

type ctxKey string

const (
	traceIDKey ctxKey = "trace_id"
	userIDKey  ctxKey = "user_id"
)

var defaultLogger *slog.Logger

func init() {
	defaultLogger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// SetDefaultLogger allows setting a configured default logger
func SetDefaultLogger(logger *slog.Logger) {
	defaultLogger = logger
}

type appContext struct {
	context.Context
	db           *gorm.DB
	shouldCommit bool
	logger       *slog.Logger
}

type AppContextOpt func(*appContext) *appContext

func WithDB(db *gorm.DB, shouldCommit bool) AppContextOpt {
	return func(ac *appContext) *appContext {
		ac.db = db
		ac.shouldCommit = shouldCommit
		return ac
	}
}

func WithLogger(logger *slog.Logger) AppContextOpt {
	return func(ac *appContext) *appContext {
		ac.logger = logger
		return ac
	}
}

func NewAppContext(parent context.Context, opts ...AppContextOpt) context.Context {
	ctx := &appContext{Context: parent}
	for _, opt := range opts {
		ctx = opt(ctx)
	}

	return ctx
}

func NewAppContextWithTracing(parent context.Context, traceID string, opts ...AppContextOpt) context.Context {
	return NewAppContext(context.WithValue(parent, traceIDKey, traceID), opts...)
}

func NewAppContextWithTracingAndUser(parent context.Context, traceID, userID string, opts ...AppContextOpt) context.Context {
	parent = context.WithValue(parent, traceIDKey, traceID)
	parent = context.WithValue(parent, userIDKey, userID)

	return NewAppContext(parent, opts...)
}

func SetDB(ctx context.Context, db *gorm.DB, shouldCommit bool) {
	appCtx, ok := ctx.(*appContext)
	if !ok {
		return
	}

	appCtx.db = db
	appCtx.shouldCommit = shouldCommit
}

// GetDB returns the transaction bound to ctx, or nil when the caller should
// fall back to its own connection.
func GetDB(ctx context.Context) *gorm.DB {
	appCtx, ok := ctx.(*appContext)
	if !ok {
		return nil
	}

	return appCtx.db
}

func Commit(ctx context.Context) error {
	appCtx, ok := ctx.(*appContext)
	if !ok || !appCtx.shouldCommit {
		return nil
	}

	return appCtx.db.Commit().Error
}

func Rollback(ctx context.Context) error {
	appCtx, ok := ctx.(*appContext)
	if !ok || !appCtx.shouldCommit {
		return nil
	}

	return appCtx.db.Rollback().Error
}

func CommitOrRollback(ctx context.Context, shouldLog bool) error {
	commitErr := Commit(ctx)
	if commitErr == nil {
		return nil
	}

	if shouldLog {
		GetLogger(ctx).Error("error on committing transaction", "error", commitErr.Error())
	}

	if err := Rollback(ctx); err != nil {
		GetLogger(ctx).Error("error on rollback transaction", "error", err.Error())
	}

	return commitErr
}

func SetLogger(ctx context.Context, logger *slog.Logger) {
	if appCtx, ok := ctx.(*appContext); ok {
		appCtx.logger = logger
	}
}

func GetLogger(ctx context.Context) *slog.Logger {
	appCtx, ok := ctx.(*appContext)
	if !ok || appCtx.logger == nil {
		return defaultLogger
	}

	return appCtx.logger
}

func GetTraceID(ctx context.Context) string {
	if tid, ok := ctx.Value(traceIDKey).(string); ok {
		return tid
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDKey).(string); ok {
		return uid
	}
	return ""
}
