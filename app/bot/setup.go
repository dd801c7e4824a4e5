package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cache "github.com/Black-And-White-Club/discord-guild-generator/bigcache"
	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/assets"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/eventbus"
	"github.com/Black-And-White-Club/discord-guild-generator/app/journal"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/metrics"
	"github.com/Black-And-White-Club/discord-guild-generator/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/trace"
)

// Intents returns the gateway intents the generator needs.
// IntentsGuildEmojis is dropped when expressions are disabled.
func Intents(cfg *config.Config) discordgo.Intent {
	intents := discordgo.IntentsGuilds
	if !cfg.Discord.DisableExpressions {
		intents |= discordgo.IntentsGuildEmojis
	}
	return intents
}

// NewSession creates the discordgo session and wraps it. The gateway is not opened.
func NewSession(cfg *config.Config, logger *slog.Logger) (*discord.DiscordSession, error) {
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("discord token is required")
	}
	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	s.Identify.Intents = Intents(cfg)
	return discord.NewDiscordSession(s, logger, discord.WithReadRetries(cfg.Discord.ReadRetries)), nil
}

// Infrastructure holds the collaborators shared by the bot and the CLI:
// the in-process pub/sub, the journal consumer, the asset loader and the event bus.
type Infrastructure struct {
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics metrics.GeneratorMetrics
	PubSub  *gochannel.GoChannel
	Router  *message.Router
	Journal *journal.Store
	Assets  assets.Loader
	Bus     *eventbus.Bus

	journalRouter *journal.JournalRouter
	cache         *cache.Cache
}

// NewInfrastructure wires the event bus listeners and, when a journal path is configured,
// a watermill router that records every forwarded event.
func NewInfrastructure(ctx context.Context, cfg *config.Config, logger *slog.Logger, tracer trace.Tracer, m metrics.GeneratorMetrics) (*Infrastructure, error) {
	if m == nil {
		m = metrics.NoOp{}
	}
	wmLogger := watermill.NewSlogLogger(logger)

	inf := &Infrastructure{
		Logger:  logger,
		Tracer:  tracer,
		Metrics: m,
		// Blocking until ack keeps the journal in emission order.
		PubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            256,
			BlockPublishUntilSubscriberAck: true,
		}, wmLogger),
	}

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}
	inf.Router = router

	if cfg.Journal.Path != "" {
		store, err := journal.Open(ctx, cfg.Journal.Path)
		if err != nil {
			inf.Close()
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		inf.Journal = store
		inf.journalRouter = journal.NewJournalRouter(logger, router, inf.PubSub, store, tracer)
		if err := inf.journalRouter.Configure(ctx); err != nil {
			inf.Close()
			return nil, fmt.Errorf("failed to configure journal router: %w", err)
		}
	}

	loader, err := inf.newAssetLoader(ctx, cfg)
	if err != nil {
		inf.Close()
		return nil, err
	}
	inf.Assets = loader

	inf.Bus = eventbus.NewBus(logger, m)
	inf.Bus.OnAll(eventbus.LogListener(logger))
	inf.Bus.OnAll(eventbus.MetricsListener(m))
	inf.Bus.OnAll(eventbus.Forwarder(inf.PubSub, guildevents.GuildGenerationEventTopic))

	return inf, nil
}

func (inf *Infrastructure) newAssetLoader(ctx context.Context, cfg *config.Config) (assets.Loader, error) {
	c, err := cache.NewCache(ctx, cfg.CacheTTL(), cfg.Assets.CacheMaxMB)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset cache: %w", err)
	}
	inf.cache = c

	opts := assets.Options{
		Cache:    c,
		MaxBytes: cfg.Assets.MaxBytes,
		Logger:   inf.Logger,
	}
	if cfg.Assets.ObjectStore != nil {
		objects, err := assets.NewObjectStore(*cfg.Assets.ObjectStore)
		if err != nil {
			return nil, fmt.Errorf("failed to create object store client: %w", err)
		}
		opts.Objects = objects
	}
	return assets.NewResolver(opts), nil
}

// NewManager builds a generator manager publishing to the shared event bus.
func (inf *Infrastructure) NewManager(session discord.Session, reason string) (*generator.Manager, error) {
	return generator.NewManager(session, generator.Options{
		Reason:    reason,
		Publisher: inf.Bus,
		Logger:    inf.Logger,
		Tracer:    inf.Tracer,
		Metrics:   inf.Metrics,
		Assets:    inf.Assets,
	})
}

// Start runs the watermill router in the background and waits until it is running.
// It is a no-op when nothing is subscribed.
func (inf *Infrastructure) Start(ctx context.Context) error {
	if inf.journalRouter == nil {
		return nil
	}
	errCh := make(chan error, 1)
	go func() {
		if err := inf.Router.Run(ctx); err != nil {
			errCh <- err
		}
	}()
	select {
	case <-inf.Router.Running():
		return nil
	case err := <-errCh:
		return fmt.Errorf("watermill router failed to start: %w", err)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases everything NewInfrastructure opened, in reverse order.
func (inf *Infrastructure) Close() error {
	var errs []error
	if inf.Router != nil {
		if err := inf.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("router: %w", err))
		}
	}
	if inf.PubSub != nil {
		if err := inf.PubSub.Close(); err != nil {
			errs = append(errs, fmt.Errorf("pubsub: %w", err))
		}
	}
	if inf.Journal != nil {
		if err := inf.Journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("journal: %w", err))
		}
	}
	if inf.cache != nil {
		if err := inf.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asset cache: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		inf.Logger.Error("Failed to close infrastructure", attr.Error(err))
		return err
	}
	return nil
}
