//go:generate go tool mockgen -source=webhook_controller.go -destination=webhook_controller_mock_test.go -package=webhook
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/gofiber/fiber/v2"
	"github.com/keywatch/keyword-bot/internal/services/dispatcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWebhookController_ReceiveEvents(t *testing.T) {
	t.Parallel()

	t.Run("valid batch is handed to the dispatcher", func(t *testing.T) {
		t.Parallel()
		controller, mockHandler := newWebhookControllerAndMocks(t)

		app := newApp()
		app.Post("/line/webhook", controller.ReceiveEvents)

		body := `{"destination":"Udest","events":[{"type":"follow","replyToken":"tok"},"junk"]}`
		mockHandler.EXPECT().
			Handle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *dispatcher.Payload) dispatcher.Stats {
				assert.Equal(t, "Udest", p.Destination)
				require.Len(t, p.Events, 2)
				assert.JSONEq(t, `{"type":"follow","replyToken":"tok"}`, string(p.Events[0]))
				return dispatcher.Stats{Events: 2, Malformed: 1, Replies: 1}
			}).
			Times(1)

		req := httptest.NewRequest(http.MethodPost, "/line/webhook", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		var got StatusResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "ok", got.Status)
	})

	t.Run("empty event list still acknowledges", func(t *testing.T) {
		t.Parallel()
		controller, mockHandler := newWebhookControllerAndMocks(t)

		app := newApp()
		app.Post("/line/webhook", controller.ReceiveEvents)

		mockHandler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(dispatcher.Stats{}).Times(1)

		req := httptest.NewRequest(http.MethodPost, "/line/webhook", bytes.NewBufferString(`{"events":[]}`))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	badBodies := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "truncated json", body: `{"events":[`},
		{name: "not json", body: "hello"},
		{name: "events is not a list", body: `{"events":5}`},
	}
	for _, tt := range badBodies {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			controller, _ := newWebhookControllerAndMocks(t)

			app := newApp()
			app.Post("/line/webhook", controller.ReceiveEvents)

			req := httptest.NewRequest(http.MethodPost, "/line/webhook", bytes.NewBufferString(tt.body))
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close() //nolint:errcheck

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			respBody, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(respBody), "invalid body")
		})
	}
}

func TestWebhookController_Probes(t *testing.T) {
	t.Parallel()

	controller, _ := newWebhookControllerAndMocks(t)
	app := newApp()
	app.Get("/health", controller.Health)
	app.Get("/version", controller.Version)

	t.Run("health", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		var got HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, HealthResponse{OK: true, DataPath: "/data/users.json"}, got)
	})

	t.Run("version", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/version", nil))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		var got VersionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "v-test", got.Version)
	})
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fibercommon.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
	})
	return app
}

func newWebhookControllerAndMocks(t *testing.T) (*WebhookController, *MockEventHandler) {
	ctrl := gomock.NewController(t)
	mockHandler := NewMockEventHandler(ctrl)
	return NewWebhookController(mockHandler, "/data/users.json", "v-test"), mockHandler
}
