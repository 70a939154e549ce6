package webhook

import (
	"context"
	"encoding/json"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/keywatch/keyword-bot/internal/services/dispatcher"
	"github.com/rs/zerolog"
)

// EventHandler processes a decoded webhook payload.
type EventHandler interface {
	Handle(ctx context.Context, payload *dispatcher.Payload) dispatcher.Stats
}

// WebhookController receives platform webhook deliveries and serves the probe endpoints.
type WebhookController struct {
	handler  EventHandler
	dataPath string
	version  string
}

// NewWebhookController creates a new WebhookController.
func NewWebhookController(handler EventHandler, dataPath, version string) *WebhookController {
	return &WebhookController{
		handler:  handler,
		dataPath: dataPath,
		version:  version,
	}
}

// ReceiveEvents godoc
// @Summary      Receive webhook events
// @Description  Accepts a batch of platform events. Each answerable event gets one reply through the reply API. Reply failures never fail the delivery.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        x-line-signature  header    string          false  "Base64 HMAC-SHA256 of the body keyed by the channel secret"
// @Param        request           body      object          true   "Event batch"
// @Success      200               {object}  StatusResponse  "Batch processed"
// @Failure      400               "Invalid body or signature"
// @Router       /line/webhook [post]
func (w *WebhookController) ReceiveEvents(c *fiber.Ctx) error {
	body := c.Body()
	var payload dispatcher.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return richerrors.Error{
			ExternalMsg: "invalid body",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	}

	logger := zerolog.Ctx(c.UserContext()).With().Str("request_id", uuid.NewString()).Logger()
	ctx := logger.WithContext(c.UserContext())
	if e := logger.Debug(); e.Enabled() {
		e.Str("version", w.version).RawJSON("payload", body).Msg("Webhook received")
	}

	stats := w.handler.Handle(ctx, &payload)
	logger.Info().
		Int("events", stats.Events).
		Int("malformed", stats.Malformed).
		Int("redelivered", stats.Redelivered).
		Int("replies", stats.Replies).
		Int("save_errors", stats.SaveErrors).
		Msg("Webhook processed")

	return c.JSON(StatusResponse{Status: "ok"})
}

// Health godoc
// @Summary      Liveness probe
// @Tags         Probes
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (w *WebhookController) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{OK: true, DataPath: w.dataPath})
}

// Version godoc
// @Summary      Build version
// @Tags         Probes
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (w *WebhookController) Version(c *fiber.Ctx) error {
	return c.JSON(VersionResponse{Version: w.version})
}
