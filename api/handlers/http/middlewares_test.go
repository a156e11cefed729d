package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	jwt2 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	appContext "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/jwt"
)

func TestAgentKeyMiddleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("agent-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	app := newTestApp()
	app.Post("/claim", newAgentKeyMiddleware(string(hash)), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name           string
		key            string
		expectedStatus int
	}{
		{name: "valid key", key: "agent-secret", expectedStatus: fiber.StatusNoContent},
		{name: "wrong key", key: "guess", expectedStatus: fiber.StatusUnauthorized},
		{name: "no key", key: "", expectedStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/claim", nil)
			if tt.key != "" {
				req.Header.Set(agentKeyHeader, tt.key)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	secret := []byte("operator-secret")

	app := newTestApp()
	app.Use(TraceMiddleware(), setUserContext)
	app.Get("/secured", newAuthMiddleware(secret), func(c *fiber.Ctx) error {
		return c.SendString(appContext.GetUserID(c.UserContext()))
	})

	token, err := jwt.CreateToken(secret, &jwt.UserClaims{
		RegisteredClaims: jwt2.RegisteredClaims{ExpiresAt: jwt2.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "42",
		Username:         "operator",
	})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/secured", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		status, body := testResponse(t, app, req)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "42", body)
	})

	t.Run("missing token", func(t *testing.T) {
		status, _ := testResponse(t, app, httptest.NewRequest(fiber.MethodGet, "/secured", nil))
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		forged, err := jwt.CreateToken([]byte("other"), &jwt.UserClaims{UserID: "1"})
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/secured", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+forged)

		status, _ := testResponse(t, app, req)
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})
}

func TestTraceMiddleware(t *testing.T) {
	app := newTestApp()
	app.Use(TraceMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	t.Run("generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace-1")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, "trace-1", resp.Header.Get("X-Trace-ID"))
	})
}

func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestSetTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		app := newTestApp()
		app.Use(setUserContext)
		app.Post("/", setTransaction(db), func(c *fiber.Ctx) error {
			assert.NotNil(t, appContext.GetDB(c.UserContext()))
			return c.SendStatus(fiber.StatusOK)
		})

		status, _ := testResponse(t, app, httptest.NewRequest(fiber.MethodPost, "/", nil))

		assert.Equal(t, fiber.StatusOK, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the handler fails", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		app := newTestApp()
		app.Use(setUserContext)
		app.Post("/", setTransaction(db), func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusConflict, "scan job already finished")
		})

		status, _ := testResponse(t, app, httptest.NewRequest(fiber.MethodPost, "/", nil))

		assert.Equal(t, fiber.StatusConflict, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on an error status", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		app := newTestApp()
		app.Use(setUserContext)
		app.Post("/", setTransaction(db), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusBadRequest)
		})

		status, _ := testResponse(t, app, httptest.NewRequest(fiber.MethodPost, "/", nil))

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
