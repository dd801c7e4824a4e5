package discord

import (
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/bwmarrin/discordgo"
)

// GenerateCommandName is the slash command that regenerates the invoking guild.
const GenerateCommandName = "generate"

// Options of the generate command.
const (
	ConfirmOptionName = "confirm"
	ReasonOptionName  = "reason"
)

var adminOnly int64 = discordgo.PermissionAdministrator

// Commands returns the application commands the bot owns.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     GenerateCommandName,
			Description:              "Delete and rebuild this server from the configured layout",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        ConfirmOptionName,
					Description: "Type the server name to confirm",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        ReasonOptionName,
					Description: "Audit log reason for every change",
					Required:    false,
				},
			},
		},
	}
}

// RegisterCommands registers the bot's slash commands with Discord. Commands that
// already exist in the guild are left alone; if listing fails every command is created.
func RegisterCommands(s Session, logger *slog.Logger, guildID string) error {
	appID, err := s.GetBotUser()
	if err != nil {
		return fmt.Errorf("failed to retrieve bot user: %w", err)
	}

	existing := map[string]bool{}
	cmds, err := s.ApplicationCommands(appID.ID, guildID)
	if err != nil {
		logger.Warn("Failed to list existing commands, creating all", attr.GuildID(guildID), attr.Error(err))
	}
	for _, c := range cmds {
		if c != nil && c.Name != "" {
			existing[c.Name] = true
		}
	}

	for _, cmd := range Commands() {
		if existing[cmd.Name] {
			logger.Debug("command already registered", attr.String("command", cmd.Name))
			continue
		}
		if _, err := s.ApplicationCommandCreate(appID.ID, guildID, cmd); err != nil {
			logger.Error("Failed to create command", attr.String("command", cmd.Name), attr.Error(err))
			return fmt.Errorf("failed to create '/%s' command: %w", cmd.Name, err)
		}
		logger.Info("registered command: /" + cmd.Name)
	}
	return nil
}
