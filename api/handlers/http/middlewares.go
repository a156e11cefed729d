package http

import (
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/jwt"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const agentKeyHeader = "X-Agent-Key"

func newAuthMiddleware(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: secret},
		Claims:      &jwt.UserClaims{},
		TokenLookup: "header:Authorization",
		SuccessHandler: func(ctx *fiber.Ctx) error {
			userClaims := userClaims(ctx)
			if userClaims == nil {
				return fiber.ErrUnauthorized
			}

			userCtx := context.NewAppContextWithTracingAndUser(
				ctx.UserContext(),
				traceID(ctx),
				userClaims.UserID,
			)

			contextLogger := logger.GetGlobalLogger()
			userCtx = contextLogger.SetInContext(userCtx, contextLogger.FromContext(userCtx))
			ctx.SetUserContext(userCtx)

			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		},
		AuthScheme: "Bearer",
	})
}

// newAgentKeyMiddleware admits requests whose X-Agent-Key matches the
// configured bcrypt hash.
func newAgentKeyMiddleware(keyHash string) fiber.Handler {
	hash := []byte(keyHash)
	return func(c *fiber.Ctx) error {
		key := c.Get(agentKeyHeader)
		if key == "" || len(hash) == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "missing agent key")
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(key)); err != nil {
			logger.WarnContext(c.UserContext(), "Agent key rejected from %s", c.IP())
			return fiber.NewError(fiber.StatusUnauthorized, "invalid agent key")
		}
		return c.Next()
	}
}

func setUserContext(c *fiber.Ctx) error {
	userCtx := context.NewAppContextWithTracing(c.UserContext(), traceID(c))

	contextLogger := logger.GetGlobalLogger()
	userCtx = contextLogger.SetInContext(userCtx, contextLogger.FromContext(userCtx))

	c.SetUserContext(userCtx)
	return c.Next()
}

// setTransaction runs the rest of the chain in one transaction. It commits
// only when the handler succeeded.
func setTransaction(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tx := db.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
		}

		context.SetDB(c.UserContext(), tx, true)

		err := c.Next()

		if err != nil || c.Response().StatusCode() >= 300 {
			if rbErr := context.Rollback(c.UserContext()); rbErr != nil {
				logger.ErrorContext(c.UserContext(), "Failed to roll back transaction: %v", rbErr)
			}
			return err
		}

		return context.CommitOrRollback(c.UserContext(), true)
	}
}

func TraceMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set("X-Trace-ID", traceID)

		c.Locals("traceID", traceID)

		return c.Next()
	}
}

func traceID(c *fiber.Ctx) string {
	if tid, ok := c.Locals("traceID").(string); ok {
		return tid
	}
	return ""
}
