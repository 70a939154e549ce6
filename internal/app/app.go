package app

import (
	"context"
	"net/http"

	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/keywatch/keyword-bot/docs" // Import Swagger docs
	"github.com/keywatch/keyword-bot/internal/auth"
	"github.com/keywatch/keyword-bot/internal/config"
	"github.com/keywatch/keyword-bot/internal/controllers/webhook"
	"github.com/keywatch/keyword-bot/internal/services/dispatcher"
	"github.com/keywatch/keyword-bot/internal/services/eventdedup"
	"github.com/keywatch/keyword-bot/internal/services/keywordstore"
	"github.com/keywatch/keyword-bot/internal/services/replysender"
	"github.com/rs/zerolog"
)

// Version is reported by GET /version. Overridden at build time with -ldflags "-X".
var Version = "dev"

// CreateServers wires the keyword store, reply sender and dispatcher into the web app.
func CreateServers(_ context.Context, settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	if settings.ChannelAccessToken == "" {
		logger.Warn().Msg("LINE_CHANNEL_ACCESS_TOKEN is empty; replies will be skipped")
	}
	if settings.ChannelSecret == "" {
		logger.Warn().Msg("LINE_CHANNEL_SECRET is empty; webhook signatures are not verified")
	}

	store := keywordstore.NewFileStore(settings.DataPath)
	sender := replysender.NewReplySender(
		&http.Client{Timeout: settings.ReplyTimeout},
		settings.LineAPIBaseURL,
		settings.ChannelAccessToken,
	)
	eventDispatcher := dispatcher.NewDispatcher(store, sender, dispatcher.Options{
		Dedup:     eventdedup.New(settings.DedupTTL),
		Serialize: settings.SerializeWebhooks,
	})
	logger.Info().
		Str("data_path", store.Path()).
		Dur("dedup_ttl", settings.DedupTTL).
		Bool("serialize_webhooks", settings.SerializeWebhooks).
		Msg("Keyword store ready")

	return CreateFiberApp(logger, eventDispatcher, store.Path(), settings), nil
}

// CreateFiberApp sets up the API routes.
func CreateFiberApp(logger zerolog.Logger, handler webhook.EventHandler, dataPath string, settings *config.Settings) *fiber.App {
	logger.Info().Str("version", Version).Msg("Starting Keyword Bot...")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fibercommon.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
		BodyLimit:             settings.MaxBodyBytes,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)

	app.Get("/swagger/*", swagger.HandlerDefault)

	webhookController := webhook.NewWebhookController(handler, dataPath, Version)
	logger.Info().Msg("Registering routes...")

	app.Get("/health", webhookController.Health)
	app.Get("/version", webhookController.Version)
	app.Post("/line/webhook", auth.SignatureMiddleware(settings.ChannelSecret), webhookController.ReceiveEvents)

	return app
}
