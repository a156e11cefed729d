package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/app"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/config"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API until ctx is done, then shuts the server down. Open
// job streams end with ctx so shutdown does not wait on them.
func Run(ctx context.Context, appContainer app.AppContainer, cfg config.Config) error {
	router := NewRouter(ctx, appContainer, cfg)

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12, // Set minimum TLS version (TLS 1.2)
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		},
		PreferServerCipherSuites: true,
	}
	router.Server().TLSConfig = tlsConfig

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.HttpPort)
		if !cfg.Server.SslEnabled {
			errCh <- router.Listen(addr)
			return
		}
		errCh <- router.ListenTLS(addr, cfg.Server.Cert, cfg.Server.Key)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return router.ShutdownWithTimeout(shutdownTimeout)
	}
}

func NewRouter(shutdown context.Context, appContainer app.AppContainer, cfg config.Config) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      "APK Scan Orchestrator",
		ErrorHandler: errorHandler,
	})
	router.Use(helmet.New())
	router.Use(TraceMiddleware())
	router.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} TraceID: ${locals:traceID}\n",
		Output: os.Stdout,
	}))

	api := router.Group("/api/v1", setUserContext)

	registerAgentAPI(appContainer, cfg.Agent, api.Group("/agent"))

	secured := api.Group("", newAuthMiddleware([]byte(cfg.Server.Secret)))
	registerScanJobAPI(shutdown, appContainer, secured.Group("/scan-jobs"))
	registerPortAPI(appContainer, secured.Group("/ports"))
	registerSettingsAPI(appContainer, secured.Group("/settings"))

	return router
}

func registerScanJobAPI(shutdown context.Context, appContainer app.AppContainer, router fiber.Router) {
	scanJobSvcGetter := scanJobServiceGetter(appContainer)

	router.Post("/", setTransaction(appContainer.DB()), CreateScanJob(scanJobSvcGetter))
	router.Post("/sweep", RunSweep(scanJobSvcGetter))
	router.Get("/active", GetActiveScanJobs(scanJobSvcGetter))
	router.Get("/:id", GetScanJobByID(scanJobSvcGetter))
	router.Get("/:id/stream", StreamScanJob(scanJobSvcGetter, shutdown))
	router.Post("/:id/cancel", setTransaction(appContainer.DB()), CancelScanJob(scanJobSvcGetter))
}

func registerPortAPI(appContainer app.AppContainer, router fiber.Router) {
	portSvcGetter := portServiceGetter(appContainer)

	router.Get("/down", GetDownPorts(portSvcGetter))
	router.Post("/down/delete", setTransaction(appContainer.DB()), DeleteDownPorts(portSvcGetter))
}

func registerSettingsAPI(appContainer app.AppContainer, router fiber.Router) {
	router.Get("/scan", GetScanSettings(settingsServiceGetter(appContainer)))
}

func registerAgentAPI(appContainer app.AppContainer, cfg config.AgentConfig, router fiber.Router) {
	agentSvcGetter := agentServiceGetter(appContainer)

	// health is polled by the dashboard, not by the agent
	router.Get("/health", GetAgentHealth(agentSvcGetter))

	jobs := router.Group("/jobs", newAgentKeyMiddleware(cfg.KeyHash))
	jobs.Post("/claim", setTransaction(appContainer.DB()), ClaimScanJob(agentSvcGetter))
	jobs.Put("/:id/progress", setTransaction(appContainer.DB()), ReportScanProgress(agentSvcGetter))
	jobs.Post("/:id/finish", setTransaction(appContainer.DB()), FinishScanJob(agentSvcGetter))
}
