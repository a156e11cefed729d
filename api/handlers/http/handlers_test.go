package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/service"
	serviceMocks "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/mocks/service"
)

type testServices struct {
	scanJobs  *serviceMocks.MockScanJobService
	scheduler *serviceMocks.MockSchedulerService
	staleness *serviceMocks.MockStalenessService
	settings  *serviceMocks.MockSettingsService
	agent     *serviceMocks.MockAgentService
}

func newTestServices() *testServices {
	return &testServices{
		scanJobs:  new(serviceMocks.MockScanJobService),
		scheduler: new(serviceMocks.MockSchedulerService),
		staleness: new(serviceMocks.MockStalenessService),
		settings:  new(serviceMocks.MockSettingsService),
		agent:     new(serviceMocks.MockAgentService),
	}
}

func (s *testServices) scanJobGetter() ServiceGetter[*service.ScanJobService] {
	return func(context.Context) *service.ScanJobService {
		return service.NewScanJobService(s.scanJobs, s.scheduler)
	}
}

func (s *testServices) portGetter() ServiceGetter[*service.PortService] {
	return func(context.Context) *service.PortService {
		return service.NewPortService(s.staleness)
	}
}

func (s *testServices) settingsGetter() ServiceGetter[*service.SettingsService] {
	return func(context.Context) *service.SettingsService {
		return service.NewSettingsService(s.settings, s.scheduler)
	}
}

func (s *testServices) agentGetter() ServiceGetter[*service.AgentService] {
	return func(context.Context) *service.AgentService {
		return service.NewAgentService(s.agent)
	}
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: errorHandler})
}

// doRequest sends a JSON request and returns the status code and body.
func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, content
}

func decode(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func testResponse(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(content)
}
