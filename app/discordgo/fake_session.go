package discord

import (
	"github.com/bwmarrin/discordgo"
)

// FakeSession provides a programmable stub for the Session interface.
// It follows the Fake/Stub pattern for testing, where each interface method
// has a corresponding Func field that can be set per-test.
type FakeSession struct {
	trace []string

	// --- Gateway Methods ---
	IntentsFunc    func() discordgo.Intent
	IsReadyFunc    func() bool
	GetBotUserFunc func() (*discordgo.User, error)
	AddHandlerFunc func(handler interface{}) func()
	OpenFunc       func() error
	CloseFunc      func() error

	// --- Guild Methods ---
	GuildFunc       func(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildEditFunc   func(guildID string, g *discordgo.GuildParams, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildMemberFunc func(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)

	// --- Role Methods ---
	GuildRolesFunc       func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildRoleCreateFunc  func(guildID string, params *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)
	GuildRoleDeleteFunc  func(guildID, roleID string, options ...discordgo.RequestOption) error
	GuildRoleReorderFunc func(guildID string, roles []*discordgo.Role, options ...discordgo.RequestOption) ([]*discordgo.Role, error)

	// --- Channel Methods ---
	GuildChannelsFunc             func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildChannelCreateComplexFunc func(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelDeleteFunc             func(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// --- Thread Methods ---
	ThreadStartComplexFunc      func(channelID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ForumThreadStartComplexFunc func(channelID string, threadData *discordgo.ThreadStart, messageData *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// --- Emoji Methods ---
	GuildEmojisFunc      func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error)
	GuildEmojiCreateFunc func(guildID string, data *discordgo.EmojiParams, options ...discordgo.RequestOption) (*discordgo.Emoji, error)
	GuildEmojiDeleteFunc func(guildID, emojiID string, options ...discordgo.RequestOption) error

	// --- Sticker Methods ---
	GuildStickersFunc      func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Sticker, error)
	GuildStickerCreateFunc func(guildID string, data *StickerParams, options ...discordgo.RequestOption) (*discordgo.Sticker, error)
	GuildStickerDeleteFunc func(guildID, stickerID string, options ...discordgo.RequestOption) error

	// --- Application Command / Interaction Methods ---
	ApplicationCommandsFunc      func(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreateFunc func(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	InteractionRespondFunc       func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEditFunc  func(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NewFakeSession initializes a new FakeSession with an empty trace.
func NewFakeSession() *FakeSession {
	return &FakeSession{
		trace: []string{},
	}
}

func (f *FakeSession) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeSession) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Gateway Methods Implementation ---

// Intents defaults to the intents the generator needs in full.
func (f *FakeSession) Intents() discordgo.Intent {
	f.record("Intents")
	if f.IntentsFunc != nil {
		return f.IntentsFunc()
	}
	return discordgo.IntentsGuilds | discordgo.IntentsGuildEmojis
}

func (f *FakeSession) IsReady() bool {
	f.record("IsReady")
	if f.IsReadyFunc != nil {
		return f.IsReadyFunc()
	}
	return true
}

func (f *FakeSession) GetBotUser() (*discordgo.User, error) {
	f.record("GetBotUser")
	if f.GetBotUserFunc != nil {
		return f.GetBotUserFunc()
	}
	return &discordgo.User{ID: "fake-bot", Username: "FakeBot", Bot: true}, nil
}

func (f *FakeSession) AddHandler(handler interface{}) func() {
	f.record("AddHandler")
	if f.AddHandlerFunc != nil {
		return f.AddHandlerFunc(handler)
	}
	return func() {}
}

func (f *FakeSession) Open() error {
	f.record("Open")
	if f.OpenFunc != nil {
		return f.OpenFunc()
	}
	return nil
}

func (f *FakeSession) Close() error {
	f.record("Close")
	if f.CloseFunc != nil {
		return f.CloseFunc()
	}
	return nil
}

// --- Guild Methods Implementation ---

func (f *FakeSession) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	f.record("Guild")
	if f.GuildFunc != nil {
		return f.GuildFunc(guildID, options...)
	}
	return &discordgo.Guild{ID: guildID, Name: "Fake Guild"}, nil
}

func (f *FakeSession) GuildEdit(guildID string, g *discordgo.GuildParams, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	f.record("GuildEdit")
	if f.GuildEditFunc != nil {
		return f.GuildEditFunc(guildID, g, options...)
	}
	return &discordgo.Guild{ID: guildID, Name: g.Name}, nil
}

func (f *FakeSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.record("GuildMember")
	if f.GuildMemberFunc != nil {
		return f.GuildMemberFunc(guildID, userID, options...)
	}
	return &discordgo.Member{GuildID: guildID, User: &discordgo.User{ID: userID}}, nil
}

// --- Role Methods Implementation ---

func (f *FakeSession) GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	f.record("GuildRoles")
	if f.GuildRolesFunc != nil {
		return f.GuildRolesFunc(guildID, options...)
	}
	return []*discordgo.Role{}, nil
}

func (f *FakeSession) GuildRoleCreate(guildID string, params *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
	f.record("GuildRoleCreate")
	if f.GuildRoleCreateFunc != nil {
		return f.GuildRoleCreateFunc(guildID, params, options...)
	}
	return &discordgo.Role{ID: "fake-role-" + params.Name, Name: params.Name}, nil
}

func (f *FakeSession) GuildRoleDelete(guildID, roleID string, options ...discordgo.RequestOption) error {
	f.record("GuildRoleDelete")
	if f.GuildRoleDeleteFunc != nil {
		return f.GuildRoleDeleteFunc(guildID, roleID, options...)
	}
	return nil
}

func (f *FakeSession) GuildRoleReorder(guildID string, roles []*discordgo.Role, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	f.record("GuildRoleReorder")
	if f.GuildRoleReorderFunc != nil {
		return f.GuildRoleReorderFunc(guildID, roles, options...)
	}
	return roles, nil
}

// --- Channel Methods Implementation ---

func (f *FakeSession) GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	f.record("GuildChannels")
	if f.GuildChannelsFunc != nil {
		return f.GuildChannelsFunc(guildID, options...)
	}
	return []*discordgo.Channel{}, nil
}

func (f *FakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.record("GuildChannelCreateComplex")
	if f.GuildChannelCreateComplexFunc != nil {
		return f.GuildChannelCreateComplexFunc(guildID, data, options...)
	}
	return &discordgo.Channel{ID: "fake-channel-" + data.Name, GuildID: guildID, Name: data.Name, Type: data.Type, ParentID: data.ParentID}, nil
}

func (f *FakeSession) ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.record("ChannelDelete")
	if f.ChannelDeleteFunc != nil {
		return f.ChannelDeleteFunc(channelID, options...)
	}
	return &discordgo.Channel{ID: channelID}, nil
}

// --- Thread Methods Implementation ---

func (f *FakeSession) ThreadStartComplex(channelID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.record("ThreadStartComplex")
	if f.ThreadStartComplexFunc != nil {
		return f.ThreadStartComplexFunc(channelID, data, options...)
	}
	return &discordgo.Channel{ID: "fake-thread-" + data.Name, Name: data.Name, ParentID: channelID, Type: data.Type}, nil
}

func (f *FakeSession) ForumThreadStartComplex(channelID string, threadData *discordgo.ThreadStart, messageData *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.record("ForumThreadStartComplex")
	if f.ForumThreadStartComplexFunc != nil {
		return f.ForumThreadStartComplexFunc(channelID, threadData, messageData, options...)
	}
	return &discordgo.Channel{ID: "fake-post-" + threadData.Name, Name: threadData.Name, ParentID: channelID, Type: discordgo.ChannelTypeGuildPublicThread}, nil
}

// --- Emoji Methods Implementation ---

func (f *FakeSession) GuildEmojis(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error) {
	f.record("GuildEmojis")
	if f.GuildEmojisFunc != nil {
		return f.GuildEmojisFunc(guildID, options...)
	}
	return []*discordgo.Emoji{}, nil
}

func (f *FakeSession) GuildEmojiCreate(guildID string, data *discordgo.EmojiParams, options ...discordgo.RequestOption) (*discordgo.Emoji, error) {
	f.record("GuildEmojiCreate")
	if f.GuildEmojiCreateFunc != nil {
		return f.GuildEmojiCreateFunc(guildID, data, options...)
	}
	return &discordgo.Emoji{ID: "fake-emoji-" + data.Name, Name: data.Name, Roles: data.Roles}, nil
}

func (f *FakeSession) GuildEmojiDelete(guildID, emojiID string, options ...discordgo.RequestOption) error {
	f.record("GuildEmojiDelete")
	if f.GuildEmojiDeleteFunc != nil {
		return f.GuildEmojiDeleteFunc(guildID, emojiID, options...)
	}
	return nil
}

// --- Sticker Methods Implementation ---

func (f *FakeSession) GuildStickers(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Sticker, error) {
	f.record("GuildStickers")
	if f.GuildStickersFunc != nil {
		return f.GuildStickersFunc(guildID, options...)
	}
	return []*discordgo.Sticker{}, nil
}

func (f *FakeSession) GuildStickerCreate(guildID string, data *StickerParams, options ...discordgo.RequestOption) (*discordgo.Sticker, error) {
	f.record("GuildStickerCreate")
	if f.GuildStickerCreateFunc != nil {
		return f.GuildStickerCreateFunc(guildID, data, options...)
	}
	return &discordgo.Sticker{ID: "fake-sticker-" + data.Name, Name: data.Name, Tags: data.Tags, GuildID: guildID}, nil
}

func (f *FakeSession) GuildStickerDelete(guildID, stickerID string, options ...discordgo.RequestOption) error {
	f.record("GuildStickerDelete")
	if f.GuildStickerDeleteFunc != nil {
		return f.GuildStickerDeleteFunc(guildID, stickerID, options...)
	}
	return nil
}

// --- Application Command / Interaction Methods Implementation ---

func (f *FakeSession) ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.record("ApplicationCommands")
	if f.ApplicationCommandsFunc != nil {
		return f.ApplicationCommandsFunc(appID, guildID, options...)
	}
	return []*discordgo.ApplicationCommand{}, nil
}

func (f *FakeSession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	f.record("ApplicationCommandCreate")
	if f.ApplicationCommandCreateFunc != nil {
		return f.ApplicationCommandCreateFunc(appID, guildID, cmd, options...)
	}
	return &discordgo.ApplicationCommand{ID: "fake-cmd-" + cmd.Name, Name: cmd.Name}, nil
}

func (f *FakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.record("InteractionRespond")
	if f.InteractionRespondFunc != nil {
		return f.InteractionRespondFunc(interaction, resp, options...)
	}
	return nil
}

func (f *FakeSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.record("InteractionResponseEdit")
	if f.InteractionResponseEditFunc != nil {
		return f.InteractionResponseEditFunc(interaction, newresp, options...)
	}
	return &discordgo.Message{ID: "fake-msg-123"}, nil
}

var _ Session = (*FakeSession)(nil)
