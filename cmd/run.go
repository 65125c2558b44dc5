package cmd

import (
	"context"
	"fmt"
	"time"

	"betbot/bot"
	"betbot/bot/locale"
	"betbot/config"
	"betbot/domain/services"
	"betbot/events"
	"betbot/infrastructure"
	"betbot/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	cfg.ConfigureLogging()

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"mode":        cfg.BotMode,
		"store":       cfg.StoreDriver,
	}).Info("Starting betting bot")

	eventBus := events.NewBus()
	infrastructure.RegisterAuditLog(eventBus)

	natsClient, err := connectEventForwarding(ctx, cfg, eventBus)
	if err != nil {
		return err
	}
	if natsClient != nil {
		defer natsClient.Close()
	}

	store, err := repository.OpenStore(ctx, storeConfig(cfg), eventBus)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("Error closing store")
		}
	}()

	catalog, err := locale.NewCatalog(cfg.DefaultLocale)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	ledgerConfig := services.LedgerConfig{
		StartingBalance: cfg.StartingBalance,
		DailyReward:     cfg.DailyReward,
	}
	dispatcher := bot.NewDispatcher(store.UnitOfWorkFactory, ledgerConfig, catalog)

	stop, err := startTransport(cfg, dispatcher)
	if err != nil {
		return err
	}

	log.Info("Bot is running")
	<-ctx.Done()

	log.Info("Shutting down bot...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Error stopping transport")
	}

	// Let in-flight event handlers finish before the store and NATS go away
	done := make(chan struct{})
	go func() {
		eventBus.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info("Shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	}

	return nil
}

// storeConfig maps the environment's storage settings onto the store opener
func storeConfig(cfg *config.Config) repository.StoreConfig {
	return repository.StoreConfig{
		Driver:     cfg.StoreDriver,
		Postgres:   cfg.Postgres(),
		SQLitePath: cfg.DBPath,
	}
}

// connectEventForwarding relays committed events to NATS when a server is configured.
// A NATS outage at startup only disables forwarding.
func connectEventForwarding(ctx context.Context, cfg *config.Config, bus *events.Bus) (*infrastructure.NATSClient, error) {
	if cfg.NATSServers == "" {
		return nil, nil
	}

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(ctx); err != nil {
		log.WithError(err).Warn("NATS unavailable, event forwarding disabled")
		return nil, nil
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := infrastructure.EnsureEventStream(client, mapper); err != nil {
		log.WithError(err).Warn("Failed to ensure event stream, publishing on core NATS")
	}

	infrastructure.ForwardEvents(bus, infrastructure.NewNATSEventPublisher(client, mapper))
	log.WithField("servers", cfg.NATSServers).Info("Forwarding events to NATS")
	return client, nil
}

// startTransport starts the webhook server or the gateway session and returns its stop function
func startTransport(cfg *config.Config, dispatcher *bot.Dispatcher) (func(context.Context) error, error) {
	switch cfg.BotMode {
	case config.BotModeWebhook:
		publicKey, err := bot.ParsePublicKey(cfg.PublicKey)
		if err != nil {
			return nil, err
		}

		server := bot.NewWebhookServer(cfg.HTTPAddr, publicKey, dispatcher)
		go func() {
			if err := server.Start(); err != nil {
				log.WithError(err).Fatal("Webhook server stopped")
			}
		}()
		return server.Shutdown, nil

	case config.BotModeGateway:
		discordBot, err := bot.New(bot.Config{
			Token:   cfg.DiscordToken,
			AppID:   cfg.AppID,
			GuildID: cfg.GuildID,
		}, dispatcher)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		return func(context.Context) error { return discordBot.Close() }, nil

	default:
		return nil, fmt.Errorf("unknown bot mode %q", cfg.BotMode)
	}
}
