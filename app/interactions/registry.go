// interactions/registry.go
package interactions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/bwmarrin/discordgo"
)

// Permission is the member permission a handler requires.
type Permission int

const (
	NoPermissionRequired Permission = iota
	// AdminRequired needs the Administrator bit in the invoking member's resolved permissions.
	AdminRequired
)

// Handler handles one interaction.
type Handler func(ctx context.Context, i *discordgo.InteractionCreate)

// Responder is the part of the session used to reject interactions.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

type registration struct {
	handler    Handler
	permission Permission
}

// Registry routes interactions to handlers by command name or component custom ID.
// Handlers only run inside a guild.
type Registry struct {
	logger   *slog.Logger
	handlers map[string]registration
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:   logger,
		handlers: make(map[string]registration),
	}
}

func (r *Registry) RegisterHandler(id string, handler Handler) {
	r.RegisterHandlerWithPermissions(id, handler, NoPermissionRequired)
}

func (r *Registry) RegisterHandlerWithPermissions(id string, handler Handler, permission Permission) {
	r.handlers[id] = registration{handler: handler, permission: permission}
}

// HandleInteraction is the discordgo event handler.
func (r *Registry) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var responder Responder
	if s != nil {
		responder = s
	}
	r.Dispatch(context.Background(), responder, i)
}

// Dispatch finds the handler for i, checks where and by whom it was invoked, and runs it.
func (r *Registry) Dispatch(ctx context.Context, responder Responder, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil {
		return
	}
	id := interactionID(i)
	if id == "" {
		return
	}

	reg, ok := r.lookup(id)
	if !ok {
		r.logger.DebugContext(ctx, "No handler for interaction", attr.String("interaction_id", id))
		return
	}

	if i.GuildID == "" {
		r.deny(ctx, responder, i, "This command can only be used in a server.")
		return
	}
	if reg.permission == AdminRequired && !isAdmin(i.Member) {
		r.logger.WarnContext(ctx, "Interaction denied: administrator required",
			attr.GuildID(i.GuildID),
			attr.String("interaction_id", id),
			attr.String("user_id", UserID(i)),
		)
		r.deny(ctx, responder, i, "You need the Administrator permission to do that.")
		return
	}

	reg.handler(ctx, i)
}

// lookup prefers an exact match, then the longest registered prefix.
func (r *Registry) lookup(id string) (registration, bool) {
	if reg, ok := r.handlers[id]; ok {
		return reg, true
	}
	var (
		best    registration
		bestLen int
	)
	for key, reg := range r.handlers {
		if strings.HasPrefix(id, key) && len(key) > bestLen {
			best, bestLen = reg, len(key)
		}
	}
	return best, bestLen > 0
}

func (r *Registry) deny(ctx context.Context, responder Responder, i *discordgo.InteractionCreate, msg string) {
	if responder == nil {
		return
	}
	err := responder.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "❌ " + msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to send denial response", attr.Error(err))
	}
}

func interactionID(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return i.ModalSubmitData().CustomID
	}
	return ""
}

func isAdmin(m *discordgo.Member) bool {
	return m != nil && m.Permissions&discordgo.PermissionAdministrator != 0
}

// UserID safely extracts the invoking user's ID.
func UserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
