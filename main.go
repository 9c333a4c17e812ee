package main

import (
	"context"
	"log"
	"time"

	"fairway-booking/cmd"
	"fairway-booking/internal/data/content"
	"fairway-booking/internal/data/repository"
	"fairway-booking/internal/scheduler"
	"fairway-booking/internal/usecase"
	"fairway-booking/internal/wire"
	"fairway-booking/pkg/database"
	"fairway-booking/pkg/events"
	"fairway-booking/pkg/notify"
	"fairway-booking/pkg/payment"
	"fairway-booking/pkg/search"
	"fairway-booking/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("env", config.App.Env),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Booking store
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, config.Database, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// Content store
	contentClient, err := content.Connect(ctx, config.Content.URI, config.Content.Database)
	if err != nil {
		logger.Fatal("Failed to connect to content store", zap.Error(err))
	}
	defer contentClient.Close(context.Background())

	integrations, closeIntegrations := buildIntegrations(config, contentClient, logger)
	defer closeIntegrations()

	go scheduler.New(repos.Session, sessionCleanupInterval, logger).Start(ctx)

	app := wire.Wiring(repos, integrations, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

// buildIntegrations connects the outbound systems. Optional ones that are
// not configured stay disabled.
func buildIntegrations(config *utils.Config, contentClient *content.Client, logger *zap.Logger) (usecase.Integrations, func()) {
	in := usecase.Integrations{
		Catalog:  content.NewCatalogStore(contentClient.DB.Collection(config.Content.Collection), logger),
		Gateway:  payment.NewStripeGateway(config.Stripe.SecretKey),
		Verifier: payment.NewStripeVerifier(config.Stripe.WebhookSecret),
	}

	if config.Search.Host != "" {
		in.Search = search.NewClient(config.Search.Host, config.Search.APIKey, config.Search.Index)
	} else {
		logger.Warn("MEILI_HOST not set, search is disabled")
	}

	mailer := notify.NewMailer(config.Email, config.App.Name, logger)
	ops := notify.Multi{mailer}
	telegram, err := notify.NewTelegram(config.Telegram.BotToken, config.Telegram.OpsChatID, logger)
	if err != nil {
		logger.Warn("Telegram ops channel unavailable", zap.Error(err))
	} else {
		ops = append(ops, telegram)
	}
	in.Notifier = notify.Dispatcher{Customer: mailer, Ops: ops}

	publisher, err := events.NewPublisher(config.Events, logger)
	if err != nil {
		logger.Fatal("Failed to start event publisher", zap.Error(err))
	}
	in.Events = publisher

	return in, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}
}
