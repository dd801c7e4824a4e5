package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/discord-guild-generator/app/bot"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/logging"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/metrics"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/tracing"
	"github.com/Black-And-White-Club/discord-guild-generator/config"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load configuration.
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateForBot(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger.
	logger, logCloser, err := logging.NewLogger(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    cfg.Logging.File,
		Service: cfg.Service.Name,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracer, tracerShutdown, err := tracing.InitTracing(ctx, tracing.Options{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Exporter:       cfg.Tempo.Exporter,
		Endpoint:       cfg.Tempo.Endpoint,
		Insecure:       cfg.Tempo.Insecure,
		SampleRate:     cfg.Tempo.SampleRate,
	})
	if err != nil {
		logger.Error("Failed to initialize tracing", attr.Error(err))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			logger.Error("Failed to flush traces", attr.Error(err))
		}
	}()

	m := metrics.New(cfg.Metrics.Namespace)

	inf, err := bot.NewInfrastructure(ctx, cfg, logger, tracer, m)
	if err != nil {
		logger.Error("Failed to initialize infrastructure", attr.Error(err))
		os.Exit(1)
	}

	session, err := bot.NewSession(cfg, logger)
	if err != nil {
		logger.Error("Failed to create Discord session", attr.Error(err))
		inf.Close()
		os.Exit(1)
	}

	// Create the Discord bot, passing in dependencies.
	discordBot, err := bot.NewDiscordBot(session, cfg, logger, inf, m.Handler())
	if err != nil {
		logger.Error("Failed to create Discord bot", attr.Error(err))
		inf.Close()
		os.Exit(1)
	}

	// Run the Discord bot in a goroutine.
	go func() {
		if err := discordBot.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("Discord bot error", attr.Error(err))
			cancel() // Stop the application if the bot fails.
		}
	}()

	// Handle graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	cancel()

	discordBot.Close()

	logger.Info("Shutdown complete.")
}
