package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	"github.com/Black-And-White-Club/discord-guild-generator/app/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/health"
	"github.com/Black-And-White-Club/discord-guild-generator/app/interactions"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/Black-And-White-Club/discord-guild-generator/config"
	"github.com/bwmarrin/discordgo"
)

type commandRegistrar func(s discord.Session, logger *slog.Logger, guildID string) error

// DiscordBot runs the gateway connection, the /generate command and the journal consumer.
type DiscordBot struct {
	Session        discord.Session
	Logger         *slog.Logger
	Config         *config.Config
	Infrastructure *Infrastructure
	// MetricsHandler is served on Config.Metrics.Address next to the health endpoints.
	MetricsHandler http.Handler

	metricsServer    *http.Server
	commandRegistrar commandRegistrar
	commandSyncDelay time.Duration
	closeOnce        sync.Once
}

func NewDiscordBot(session discord.Session, cfg *config.Config, logger *slog.Logger, inf *Infrastructure, metricsHandler http.Handler) (*DiscordBot, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}
	if inf == nil {
		return nil, fmt.Errorf("infrastructure cannot be nil")
	}
	logger.Info("Creating DiscordBot")
	return &DiscordBot{
		Session:          session,
		Logger:           logger,
		Config:           cfg,
		Infrastructure:   inf,
		MetricsHandler:   metricsHandler,
		commandRegistrar: discord.RegisterCommands,
		commandSyncDelay: 500 * time.Millisecond,
	}, nil
}

func (bot *DiscordBot) Run(ctx context.Context) error {
	bot.Logger.InfoContext(ctx, "Starting Discord bot", attr.Any("config", bot.Config))

	manager, err := bot.Infrastructure.NewManager(bot.Session, bot.Config.Generator.Reason)
	if err != nil {
		bot.Logger.ErrorContext(ctx, "Failed to create generator", attr.Error(err))
		return err
	}

	registry := interactions.NewRegistry(bot.Logger)
	if _, err := guild.InitializeGuildModule(ctx, bot.Session, manager, bot.Infrastructure.PubSub, registry, bot.Logger, bot.Infrastructure.Tracer, bot.Infrastructure.Metrics, bot.Config); err != nil {
		bot.Logger.ErrorContext(ctx, "Failed to initialize guild module", attr.Error(err))
		return err
	}

	if err := bot.Infrastructure.Start(ctx); err != nil {
		bot.Logger.ErrorContext(ctx, "Failed to start watermill router", attr.Error(err))
		return err
	}

	bot.startMetricsServer()

	bot.Session.AddHandler(registry.HandleInteraction)
	bot.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		bot.Logger.InfoContext(ctx, "Discord bot is connected and ready.", attr.Int("guilds", len(r.Guilds)))
		// Guild-scoped registration is only needed when no single guild is configured.
		if bot.Config.Discord.GuildID == "" {
			go bot.syncGuildCommands(ctx, r.Guilds)
		}
	})

	if bot.Config.Discord.GuildID != "" {
		if err := bot.commandRegistrar(bot.Session, bot.Logger, bot.Config.Discord.GuildID); err != nil {
			bot.Logger.ErrorContext(ctx, "Failed to register slash commands", attr.Error(err))
			return err
		}
	}

	if err := bot.Session.Open(); err != nil {
		bot.Logger.ErrorContext(ctx, "Error opening discord connection", attr.Error(err))
		return err
	}
	bot.Logger.InfoContext(ctx, "Discord bot is now running.")

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		bot.Logger.Info("Shutting down Discord bot...")
		bot.Close()
	}()

	return nil
}

// syncGuildCommands registers commands in every guild the bot is in.
// One failing guild does not stop the others.
func (bot *DiscordBot) syncGuildCommands(ctx context.Context, guilds []*discordgo.Guild) {
	for i, g := range guilds {
		if g == nil || g.ID == "" {
			continue
		}
		if i > 0 && bot.commandSyncDelay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(bot.commandSyncDelay):
			}
		}
		if err := bot.commandRegistrar(bot.Session, bot.Logger, g.ID); err != nil {
			bot.Logger.WarnContext(ctx, "Failed to register commands for guild",
				attr.GuildID(g.ID),
				attr.Error(err))
		}
	}
}

func (bot *DiscordBot) startMetricsServer() {
	if bot.MetricsHandler == nil || bot.Config.Metrics.Address == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", bot.MetricsHandler)
	health.NewHandler(bot.Config.Service.Version, func() (bool, string) {
		if !bot.Session.IsReady() {
			return false, "gateway not ready"
		}
		return true, ""
	}).Register(mux)
	bot.metricsServer = &http.Server{
		Addr:              bot.Config.Metrics.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := bot.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			bot.Logger.Error("Metrics server stopped", attr.Error(err))
		}
	}()
	bot.Logger.Info("Serving metrics", attr.String("address", bot.Config.Metrics.Address))
}

// Close is safe to call more than once.
func (b *DiscordBot) Close() {
	b.closeOnce.Do(b.close)
}

func (b *DiscordBot) close() {
	b.Logger.Info("Closing bot")
	if b.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.metricsServer.Shutdown(ctx); err != nil {
			b.Logger.Error("Failed to stop metrics server", attr.Error(err))
		}
	}
	// Close the Discord session.
	if err := b.Session.Close(); err != nil {
		b.Logger.Error("Failed to close Discord session", attr.Error(err))
	}
	// Router, pub/sub and journal.
	_ = b.Infrastructure.Close()
}
