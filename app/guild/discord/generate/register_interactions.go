package generate

import (
	"context"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	"github.com/Black-And-White-Club/discord-guild-generator/app/interactions"
	"github.com/bwmarrin/discordgo"
)

// RegisterHandlers registers the /generate handler.
func RegisterHandlers(registry *interactions.Registry, manager GenerateManager) {
	// Discord hides the command from non-admins; the registry enforces it again.
	registry.RegisterHandlerWithPermissions(discord.GenerateCommandName, func(ctx context.Context, i *discordgo.InteractionCreate) {
		_ = manager.HandleGenerateCommand(ctx, i)
	}, interactions.AdminRequired)
}
