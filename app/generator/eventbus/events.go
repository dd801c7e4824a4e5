// Package eventbus carries the generator's lifecycle events to listeners.
package eventbus

import (
	"time"

	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/bwmarrin/discordgo"
)

// Kind names an event. The values are stable and appear in logs and the journal.
type Kind string

const (
	KindGenerationStarted  Kind = "guildGenerate"
	KindGenerationFinished Kind = "guildGenerated"
	KindRoleDeleted        Kind = "roleDelete"
	KindChannelDeleted     Kind = "channelDelete"
	KindEmojiDeleted       Kind = "emojiDelete"
	KindStickerDeleted     Kind = "stickerDelete"
	KindRoleCreated        Kind = "roleCreate"
	KindChannelCreated     Kind = "channelCreate"
	KindThreadCreated      Kind = "threadCreate"
	KindEmojiCreated       Kind = "emojiCreate"
	KindStickerCreated     Kind = "stickerCreate"
)

// Kinds lists every event kind in lifecycle order.
var Kinds = []Kind{
	KindGenerationStarted,
	KindEmojiDeleted, KindStickerDeleted, KindRoleDeleted, KindChannelDeleted,
	KindRoleCreated, KindEmojiCreated, KindStickerCreated, KindChannelCreated, KindThreadCreated,
	KindGenerationFinished,
}

// Meta is common to every event.
type Meta struct {
	RunID   string
	GuildID string
	// Reason is the audit log reason attached to the remote call.
	Reason string
	At     time.Time
}

func (m Meta) Metadata() Meta { return m }

// Event is implemented by every event struct below.
type Event interface {
	Kind() Kind
	Metadata() Meta
}

type GenerationStarted struct {
	Meta
	Guild  *discordgo.Guild
	Layout *layout.Guild
}

type GenerationFinished struct {
	Meta
	// Guild is the guild as returned by the residual edit, or the snapshot when no edit ran.
	Guild  *discordgo.Guild
	Layout *layout.Guild
}

type RoleDeleted struct {
	Meta
	Role *discordgo.Role
}

type ChannelDeleted struct {
	Meta
	Channel *discordgo.Channel
}

type EmojiDeleted struct {
	Meta
	Emoji *discordgo.Emoji
}

type StickerDeleted struct {
	Meta
	Sticker *discordgo.Sticker
}

type RoleCreated struct {
	Meta
	Role *discordgo.Role
	Spec layout.RoleSpec
}

// ChannelCreated is emitted for root channels, categories and category children.
// Exactly one of Spec and Category is set.
type ChannelCreated struct {
	Meta
	Channel  *discordgo.Channel
	Spec     *layout.ChannelSpec
	Category *layout.CategorySpec
}

type ThreadCreated struct {
	Meta
	Thread *discordgo.Channel
	Parent *discordgo.Channel
	Spec   layout.ThreadSpec
}

type EmojiCreated struct {
	Meta
	Emoji *discordgo.Emoji
	Spec  layout.EmojiSpec
}

type StickerCreated struct {
	Meta
	Sticker *discordgo.Sticker
	Spec    layout.StickerSpec
}

func (GenerationStarted) Kind() Kind  { return KindGenerationStarted }
func (GenerationFinished) Kind() Kind { return KindGenerationFinished }
func (RoleDeleted) Kind() Kind        { return KindRoleDeleted }
func (ChannelDeleted) Kind() Kind     { return KindChannelDeleted }
func (EmojiDeleted) Kind() Kind       { return KindEmojiDeleted }
func (StickerDeleted) Kind() Kind     { return KindStickerDeleted }
func (RoleCreated) Kind() Kind        { return KindRoleCreated }
func (ChannelCreated) Kind() Kind     { return KindChannelCreated }
func (ThreadCreated) Kind() Kind      { return KindThreadCreated }
func (EmojiCreated) Kind() Kind       { return KindEmojiCreated }
func (StickerCreated) Kind() Kind     { return KindStickerCreated }
