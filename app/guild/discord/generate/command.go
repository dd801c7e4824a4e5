package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/Black-And-White-Club/discord-guild-generator/app/interactions"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bwmarrin/discordgo"
)

// Command outcomes recorded in metrics.
const (
	outcomeAccepted      = "accepted"
	outcomeRejected      = "rejected"
	outcomeBusy          = "busy"
	outcomeInvalidLayout = "invalid_layout"
	outcomeSuccess       = "success"
	outcomeFailure       = "failure"
)

// HandleGenerateCommand handles the /generate slash command.
// The interaction is deferred before anything else; the invoker must confirm with the
// server's exact name and the outcome is written back to the deferred response.
func (gm *generateManager) HandleGenerateCommand(ctx context.Context, i *discordgo.InteractionCreate) error {
	return gm.operationWrapper(ctx, "HandleGenerateCommand", func(ctx context.Context) error {
		guildID := i.GuildID
		userID := interactions.UserID(i)

		gm.logger.InfoContext(ctx, "Generate command received",
			attr.GuildID(guildID),
			attr.String("user_id", userID))

		if guildID == "" || i.Type != discordgo.InteractionApplicationCommand {
			gm.metrics.RecordCommand(discord.GenerateCommandName, outcomeRejected)
			return gm.respondWithError(i, "This command can only be used in a server.")
		}

		// Discord allows three seconds to acknowledge; every check below may be slow.
		err := gm.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
		})
		if err != nil {
			return fmt.Errorf("failed to defer generate response: %w", err)
		}

		opts := commandOptions(i)

		guild, err := gm.session.Guild(guildID, discordgo.WithContext(ctx))
		if err != nil {
			gm.metrics.RecordCommand(discord.GenerateCommandName, outcomeFailure)
			gm.editWithError(ctx, i, "Could not look up this server. Nothing was changed.")
			return fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
		}
		if strings.TrimSpace(opts[discord.ConfirmOptionName]) != guild.Name {
			gm.metrics.RecordCommand(discord.GenerateCommandName, outcomeRejected)
			gm.editWithError(ctx, i, fmt.Sprintf("Confirmation did not match the server name %q. Nothing was changed.", guild.Name))
			return nil
		}

		if !gm.acquire(guildID) {
			gm.metrics.RecordCommand(discord.GenerateCommandName, outcomeBusy)
			gm.editWithError(ctx, i, "A generation is already running for this server.")
			return nil
		}

		g, err := gm.loadLayout(gm.cfg.LayoutPath)
		if err != nil {
			gm.release(guildID)
			gm.metrics.RecordCommand(discord.GenerateCommandName, outcomeInvalidLayout)
			gm.editWithError(ctx, i, "The configured layout could not be loaded. Nothing was changed.")
			return fmt.Errorf("failed to load layout %s: %w", gm.cfg.LayoutPath, err)
		}

		reason := opts[discord.ReasonOptionName]
		if reason == "" {
			reason = fmt.Sprintf("Requested by %s via /%s", userName(i), discord.GenerateCommandName)
		}
		gm.metrics.RecordCommand(discord.GenerateCommandName, outcomeAccepted)
		gm.publishRequest(ctx, guildID, userID, reason)

		runCtx := context.WithoutCancel(ctx)
		gm.goFunc(func() { gm.run(runCtx, i, g, reason) })
		return nil
	})
}

// run performs the generation and reports the outcome on the deferred response.
func (gm *generateManager) run(ctx context.Context, i *discordgo.InteractionCreate, g *layout.Guild, reason string) {
	defer gm.release(i.GuildID)

	if gm.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gm.cfg.Timeout)
		defer cancel()
	}

	err := gm.generator.Generate(ctx, i.GuildID, g, reason)

	content := "✅ Server regenerated from the configured layout."
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
		content = fmt.Sprintf("❌ Generation failed: %v", err)
		gm.logger.ErrorContext(ctx, "Guild generation failed",
			attr.GuildID(i.GuildID),
			attr.Error(err))
	}
	gm.metrics.RecordCommand(discord.GenerateCommandName, outcome)

	if _, err := gm.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		// The channel the command was issued from is usually gone by now.
		gm.logger.WarnContext(ctx, "Failed to report generation result",
			attr.GuildID(i.GuildID),
			attr.Error(err))
	}
}

func (gm *generateManager) publishRequest(ctx context.Context, guildID, userID, reason string) {
	if gm.publisher == nil {
		return
	}
	payload, err := json.Marshal(guildevents.GuildGenerationRequestedEvent{
		GuildID:     guildID,
		RequestedBy: userID,
		LayoutPath:  gm.cfg.LayoutPath,
		Reason:      reason,
		RequestedAt: gm.now().UTC(),
	})
	if err != nil {
		gm.logger.ErrorContext(ctx, "Failed to marshal generation request", attr.Error(err))
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("guild_id", guildID)
	if err := gm.publisher.Publish(guildevents.GuildGenerationRequestedTopic, msg); err != nil {
		gm.logger.WarnContext(ctx, "Failed to publish generation request",
			attr.Topic(guildevents.GuildGenerationRequestedTopic),
			attr.Error(err))
	}
}

// editWithError replaces the deferred response with an error message.
func (gm *generateManager) editWithError(ctx context.Context, i *discordgo.InteractionCreate, message string) {
	content := fmt.Sprintf("❌ %s", message)
	if _, err := gm.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		gm.logger.WarnContext(ctx, "Failed to edit generate response",
			attr.GuildID(i.GuildID),
			attr.Error(err))
	}
}

// respondWithError sends an ephemeral error message to the user.
func (gm *generateManager) respondWithError(i *discordgo.InteractionCreate, message string) error {
	return gm.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func commandOptions(i *discordgo.InteractionCreate) map[string]string {
	out := map[string]string{}
	for _, opt := range i.ApplicationCommandData().Options {
		if opt != nil && opt.Type == discordgo.ApplicationCommandOptionString {
			out[opt.Name] = opt.StringValue()
		}
	}
	return out
}

func userName(i *discordgo.InteractionCreate) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.String()
	case i.User != nil:
		return i.User.String()
	}
	return "unknown user"
}
