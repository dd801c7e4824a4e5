package guild

import (
	"context"
	"fmt"
	"log/slog"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	"github.com/Black-And-White-Club/discord-guild-generator/app/guild/discord/generate"
	"github.com/Black-And-White-Club/discord-guild-generator/app/interactions"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/metrics"
	"github.com/Black-And-White-Club/discord-guild-generator/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// GuildModule owns the guild-facing slash commands.
type GuildModule struct {
	generateManager generate.GenerateManager
	logger          *slog.Logger
}

// InitializeGuildModule creates the /generate command manager and registers its handler.
func InitializeGuildModule(
	ctx context.Context,
	session discord.Session,
	generator generate.Generator,
	publisher message.Publisher,
	interactionRegistry *interactions.Registry,
	logger *slog.Logger,
	tracer trace.Tracer,
	m metrics.GeneratorMetrics,
	cfg *config.Config,
) (*GuildModule, error) {
	if interactionRegistry == nil {
		return nil, fmt.Errorf("interaction registry cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	generateManager, err := generate.NewGenerateManager(session, generator, publisher, logger, tracer, m, generate.Config{
		LayoutPath: cfg.Generator.LayoutPath,
		Timeout:    cfg.GenerateTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generate manager: %w", err)
	}

	generate.RegisterHandlers(interactionRegistry, generateManager)

	logger.InfoContext(ctx, "Guild module initialized successfully")

	return &GuildModule{
		generateManager: generateManager,
		logger:          logger,
	}, nil
}

// GetGenerateManager returns the generate manager for external use
func (m *GuildModule) GetGenerateManager() generate.GenerateManager {
	return m.generateManager
}
