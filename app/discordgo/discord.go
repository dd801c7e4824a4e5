package discord

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// Session defines the interface for interacting with Discord.
type Session interface {
	Intents() discordgo.Intent
	IsReady() bool
	GetBotUser() (*discordgo.User, error)
	AddHandler(handler interface{}) func()
	Open() error
	Close() error

	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildEdit(guildID string, g *discordgo.GuildParams, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)

	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildRoleCreate(guildID string, params *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)
	GuildRoleDelete(guildID, roleID string, options ...discordgo.RequestOption) error
	GuildRoleReorder(guildID string, roles []*discordgo.Role, options ...discordgo.RequestOption) ([]*discordgo.Role, error)

	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ThreadStartComplex(channelID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ForumThreadStartComplex(channelID string, threadData *discordgo.ThreadStart, messageData *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	GuildEmojis(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error)
	GuildEmojiCreate(guildID string, data *discordgo.EmojiParams, options ...discordgo.RequestOption) (*discordgo.Emoji, error)
	GuildEmojiDelete(guildID, emojiID string, options ...discordgo.RequestOption) error

	GuildStickers(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Sticker, error)
	GuildStickerCreate(guildID string, data *StickerParams, options ...discordgo.RequestOption) (*discordgo.Sticker, error)
	GuildStickerDelete(guildID, stickerID string, options ...discordgo.RequestOption) error

	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSession is an implementation of the Session interface.
type DiscordSession struct {
	session     *discordgo.Session
	logger      *slog.Logger
	readRetries uint64

	ready     atomic.Bool
	readyOnce sync.Once
	readyCh   chan struct{}
}

// SessionOption configures a DiscordSession.
type SessionOption func(*DiscordSession)

// WithReadRetries sets how many times idempotent reads are retried on transient failures.
func WithReadRetries(n int) SessionOption {
	return func(d *DiscordSession) {
		if n >= 0 {
			d.readRetries = uint64(n)
		}
	}
}

// NewDiscordSession wraps session and starts tracking gateway readiness.
func NewDiscordSession(session *discordgo.Session, logger *slog.Logger, opts ...SessionOption) *DiscordSession {
	d := &DiscordSession{
		session:     session,
		logger:      logger,
		readRetries: defaultReadRetries,
		readyCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		d.markReady(true)
		logger.Info("Discord gateway ready", "session_id", r.SessionID, "guilds", len(r.Guilds))
	})
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Resumed) {
		d.markReady(true)
	})
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) {
		d.markReady(false)
		logger.Warn("Discord gateway disconnected")
	})
	return d
}

func (d *DiscordSession) GetUnderlyingSession() *discordgo.Session {
	return d.session
}

func (d *DiscordSession) markReady(ready bool) {
	d.ready.Store(ready)
	if ready {
		d.readyOnce.Do(func() { close(d.readyCh) })
	}
}

// IsReady reports whether the gateway has completed its handshake and is connected.
func (d *DiscordSession) IsReady() bool {
	return d.ready.Load()
}

// WaitReady blocks until the first Ready event or ctx is done.
func (d *DiscordSession) WaitReady(ctx context.Context) error {
	select {
	case <-d.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Intents returns the gateway intents the session identifies with.
func (d *DiscordSession) Intents() discordgo.Intent {
	return d.session.Identify.Intents
}

// AddHandler wraps the discordgo AddHandler method.
func (d *DiscordSession) AddHandler(handler interface{}) func() {
	return d.session.AddHandler(handler)
}

// Open wraps the discordgo Open method.
func (d *DiscordSession) Open() error {
	d.logger.Info("Opening discord websocket connection")
	return d.session.Open()
}

// Close wraps the discordgo Close method.
func (d *DiscordSession) Close() error {
	d.logger.Info("Closing discord websocket connection")
	d.markReady(false)
	return d.session.Close()
}

// GetBotUser returns the user the session is authenticated as.
func (d *DiscordSession) GetBotUser() (*discordgo.User, error) {
	if d.session.State != nil && d.session.State.User != nil {
		return d.session.State.User, nil
	}
	var user *discordgo.User
	err := d.retryRead("get_bot_user", nil, func() (err error) {
		user, err = d.session.User("@me")
		return err
	})
	return user, err
}

func (d *DiscordSession) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	var guild *discordgo.Guild
	err := d.retryRead("guild", options, func() (err error) {
		guild, err = d.session.Guild(guildID, options...)
		return err
	})
	return guild, err
}

func (d *DiscordSession) GuildEdit(guildID string, g *discordgo.GuildParams, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	return d.session.GuildEdit(guildID, g, options...)
}

func (d *DiscordSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	var member *discordgo.Member
	err := d.retryRead("guild_member", options, func() (err error) {
		member, err = d.session.GuildMember(guildID, userID, options...)
		return err
	})
	return member, err
}

func (d *DiscordSession) GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	var roles []*discordgo.Role
	err := d.retryRead("guild_roles", options, func() (err error) {
		roles, err = d.session.GuildRoles(guildID, options...)
		return err
	})
	return roles, err
}

func (d *DiscordSession) GuildRoleCreate(guildID string, params *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
	return d.session.GuildRoleCreate(guildID, params, options...)
}

func (d *DiscordSession) GuildRoleDelete(guildID, roleID string, options ...discordgo.RequestOption) error {
	return d.session.GuildRoleDelete(guildID, roleID, options...)
}

func (d *DiscordSession) GuildRoleReorder(guildID string, roles []*discordgo.Role, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	return d.session.GuildRoleReorder(guildID, roles, options...)
}

func (d *DiscordSession) GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	var channels []*discordgo.Channel
	err := d.retryRead("guild_channels", options, func() (err error) {
		channels, err = d.session.GuildChannels(guildID, options...)
		return err
	})
	return channels, err
}

func (d *DiscordSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return d.session.GuildChannelCreateComplex(guildID, data, options...)
}

func (d *DiscordSession) ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return d.session.ChannelDelete(channelID, options...)
}

func (d *DiscordSession) ThreadStartComplex(channelID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return d.session.ThreadStartComplex(channelID, data, options...)
}

func (d *DiscordSession) ForumThreadStartComplex(channelID string, threadData *discordgo.ThreadStart, messageData *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return d.session.ForumThreadStartComplex(channelID, threadData, messageData, options...)
}

func (d *DiscordSession) GuildEmojis(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error) {
	var emojis []*discordgo.Emoji
	err := d.retryRead("guild_emojis", options, func() (err error) {
		emojis, err = d.session.GuildEmojis(guildID, options...)
		return err
	})
	return emojis, err
}

func (d *DiscordSession) GuildEmojiCreate(guildID string, data *discordgo.EmojiParams, options ...discordgo.RequestOption) (*discordgo.Emoji, error) {
	return d.session.GuildEmojiCreate(guildID, data, options...)
}

func (d *DiscordSession) GuildEmojiDelete(guildID, emojiID string, options ...discordgo.RequestOption) error {
	return d.session.GuildEmojiDelete(guildID, emojiID, options...)
}

func (d *DiscordSession) ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	return d.session.ApplicationCommands(appID, guildID, options...)
}

func (d *DiscordSession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	return d.session.ApplicationCommandCreate(appID, guildID, cmd, options...)
}

func (d *DiscordSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	return d.session.InteractionRespond(interaction, resp, options...)
}

func (d *DiscordSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return d.session.InteractionResponseEdit(interaction, newresp, options...)
}
