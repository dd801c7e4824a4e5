package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/eventbus"
	"github.com/bwmarrin/discordgo"
)

const (
	testGuildID = "100"
	testBotID   = "900"
)

// fakeGuild is an in-memory guild behind a discord.FakeSession.
type fakeGuild struct {
	t *testing.T

	guild    *discordgo.Guild
	roles    []*discordgo.Role
	channels []*discordgo.Channel
	emojis   []*discordgo.Emoji
	stickers []*discordgo.Sticker
	botRoles []string
	nextID   int

	edits   []*discordgo.GuildParams
	reasons []string
	calls   []string
}

func newFakeGuild(t *testing.T) *fakeGuild {
	t.Helper()
	g := &fakeGuild{
		t:      t,
		guild:  &discordgo.Guild{ID: testGuildID, Name: "Test Guild", PremiumTier: discordgo.PremiumTier1},
		nextID: 1000,
	}
	g.roles = []*discordgo.Role{
		{ID: testGuildID, Name: "@everyone", Position: 0},
		{ID: "200", Name: "Bot", Position: 5, Managed: true},
		{ID: "201", Name: "old-mod", Position: 2},
	}
	g.botRoles = []string{"200"}
	g.channels = []*discordgo.Channel{
		{ID: "300", Name: "Old", Type: discordgo.ChannelTypeGuildCategory},
		{ID: "301", Name: "old-general", Type: discordgo.ChannelTypeGuildText, ParentID: "300"},
		{ID: "302", Name: "old-thread", Type: discordgo.ChannelTypeGuildPublicThread, ParentID: "301"},
	}
	g.emojis = []*discordgo.Emoji{{ID: "400", Name: "old_emoji"}}
	g.stickers = []*discordgo.Sticker{{ID: "500", Name: "old_sticker"}}
	return g
}

// emptyFakeGuild holds only @everyone and the bot's managed role.
func emptyFakeGuild(t *testing.T) *fakeGuild {
	g := newFakeGuild(t)
	g.roles = g.roles[:2]
	g.channels = nil
	g.emojis = nil
	g.stickers = nil
	return g
}

func (g *fakeGuild) id() string {
	g.nextID++
	return strconv.Itoa(g.nextID)
}

func (g *fakeGuild) note(call string, options []discordgo.RequestOption) {
	g.calls = append(g.calls, call)
	if len(options) == 0 {
		return
	}
	cfg := &discordgo.RequestConfig{Request: httptest.NewRequest("GET", "/", nil)}
	for _, opt := range options {
		opt(cfg)
	}
	g.reasons = append(g.reasons, cfg.Request.Header.Get("X-Audit-Log-Reason"))
}

func (g *fakeGuild) session(intents discordgo.Intent) *discord.FakeSession {
	fs := discord.NewFakeSession()
	fs.IntentsFunc = func() discordgo.Intent { return intents }
	fs.GetBotUserFunc = func() (*discordgo.User, error) {
		return &discordgo.User{ID: testBotID, Username: "builder", Discriminator: "0"}, nil
	}
	fs.GuildFunc = func(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
		g.calls = append(g.calls, "Guild")
		copied := *g.guild
		return &copied, nil
	}
	fs.GuildMemberFunc = func(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
		g.calls = append(g.calls, "GuildMember")
		return &discordgo.Member{User: &discordgo.User{ID: userID}, Roles: g.botRoles}, nil
	}
	fs.GuildRolesFunc = func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
		g.calls = append(g.calls, "GuildRoles")
		return append([]*discordgo.Role(nil), g.roles...), nil
	}
	fs.GuildChannelsFunc = func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
		g.calls = append(g.calls, "GuildChannels")
		return append([]*discordgo.Channel(nil), g.channels...), nil
	}
	fs.GuildEmojisFunc = func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error) {
		g.calls = append(g.calls, "GuildEmojis")
		return append([]*discordgo.Emoji(nil), g.emojis...), nil
	}
	fs.GuildStickersFunc = func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Sticker, error) {
		g.calls = append(g.calls, "GuildStickers")
		return append([]*discordgo.Sticker(nil), g.stickers...), nil
	}

	fs.GuildEmojiDeleteFunc = func(guildID, emojiID string, options ...discordgo.RequestOption) error {
		g.note("GuildEmojiDelete", options)
		g.emojis = removeBy(g.emojis, func(e *discordgo.Emoji) bool { return e.ID == emojiID })
		return nil
	}
	fs.GuildStickerDeleteFunc = func(guildID, stickerID string, options ...discordgo.RequestOption) error {
		g.note("GuildStickerDelete", options)
		g.stickers = removeBy(g.stickers, func(s *discordgo.Sticker) bool { return s.ID == stickerID })
		return nil
	}
	fs.GuildRoleDeleteFunc = func(guildID, roleID string, options ...discordgo.RequestOption) error {
		g.note("GuildRoleDelete", options)
		if roleID == testGuildID {
			g.t.Errorf("@everyone must never be deleted")
		}
		for _, r := range g.roles {
			if r.ID == roleID && r.Managed {
				g.t.Errorf("managed role %s must never be deleted", roleID)
			}
		}
		g.roles = removeBy(g.roles, func(r *discordgo.Role) bool { return r.ID == roleID })
		return nil
	}
	fs.ChannelDeleteFunc = func(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		g.note("ChannelDelete", options)
		var deleted *discordgo.Channel
		for _, c := range g.channels {
			if c.ID == channelID {
				deleted = c
			}
		}
		if deleted == nil {
			return nil, fmt.Errorf("unknown channel %s", channelID)
		}
		if deleted.IsThread() {
			g.t.Errorf("thread %s must never be deleted directly", channelID)
		}
		// Deleting a channel removes its threads with it.
		g.channels = removeBy(g.channels, func(c *discordgo.Channel) bool {
			return c.ID == channelID || (c.IsThread() && c.ParentID == channelID)
		})
		return deleted, nil
	}

	fs.GuildRoleCreateFunc = func(guildID string, params *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
		g.note("GuildRoleCreate:"+params.Name, options)
		role := &discordgo.Role{ID: g.id(), Name: params.Name, Position: 1}
		if params.Color != nil {
			role.Color = *params.Color
		}
		if params.Permissions != nil {
			role.Permissions = *params.Permissions
		}
		g.roles = append(g.roles, role)
		return role, nil
	}
	fs.GuildRoleReorderFunc = func(guildID string, roles []*discordgo.Role, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
		g.note("GuildRoleReorder", options)
		for _, moved := range roles {
			for _, r := range g.roles {
				if r.ID == moved.ID {
					r.Position = moved.Position
				}
			}
		}
		return g.roles, nil
	}
	fs.GuildChannelCreateComplexFunc = func(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		g.note("GuildChannelCreateComplex:"+data.Name, options)
		if data.ParentID != "" && g.channel(data.ParentID) == nil {
			g.t.Errorf("channel %q created under unknown parent %s", data.Name, data.ParentID)
		}
		for _, ow := range data.PermissionOverwrites {
			if ow.Type == discordgo.PermissionOverwriteTypeRole && g.role(ow.ID) == nil {
				g.t.Errorf("channel %q overwrites unknown role %s", data.Name, ow.ID)
			}
		}
		ch := &discordgo.Channel{
			ID:                   g.id(),
			GuildID:              guildID,
			Name:                 data.Name,
			Type:                 data.Type,
			Topic:                data.Topic,
			ParentID:             data.ParentID,
			PermissionOverwrites: data.PermissionOverwrites,
		}
		g.channels = append(g.channels, ch)
		return ch, nil
	}
	fs.ThreadStartComplexFunc = func(channelID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		g.note("ThreadStartComplex:"+data.Name, options)
		return g.addThread(channelID, data.Name, data.Type), nil
	}
	fs.ForumThreadStartComplexFunc = func(channelID string, threadData *discordgo.ThreadStart, messageData *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		g.note("ForumThreadStartComplex:"+threadData.Name, options)
		if messageData == nil || messageData.Content == "" {
			g.t.Errorf("forum thread %q needs a starter message", threadData.Name)
		}
		return g.addThread(channelID, threadData.Name, discordgo.ChannelTypeGuildPublicThread), nil
	}
	fs.GuildEmojiCreateFunc = func(guildID string, data *discordgo.EmojiParams, options ...discordgo.RequestOption) (*discordgo.Emoji, error) {
		g.note("GuildEmojiCreate:"+data.Name, options)
		emoji := &discordgo.Emoji{ID: g.id(), Name: data.Name, Roles: data.Roles}
		g.emojis = append(g.emojis, emoji)
		return emoji, nil
	}
	fs.GuildStickerCreateFunc = func(guildID string, data *discord.StickerParams, options ...discordgo.RequestOption) (*discordgo.Sticker, error) {
		g.note("GuildStickerCreate:"+data.Name, options)
		if g.guild.PremiumTier == discordgo.PremiumTierNone {
			return nil, fmt.Errorf("sticker uploads need a boosted guild")
		}
		sticker := &discordgo.Sticker{ID: g.id(), Name: data.Name, Tags: data.Tags}
		g.stickers = append(g.stickers, sticker)
		return sticker, nil
	}
	fs.GuildEditFunc = func(guildID string, params *discordgo.GuildParams, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
		g.note("GuildEdit", options)
		g.edits = append(g.edits, params)
		if params.Name != "" {
			g.guild.Name = params.Name
		}
		if params.RulesChannelID != "" {
			g.guild.RulesChannelID = params.RulesChannelID
		}
		if params.AfkChannelID != "" {
			g.guild.AfkChannelID = params.AfkChannelID
		}
		copied := *g.guild
		return &copied, nil
	}
	return fs
}

func (g *fakeGuild) addThread(parentID, name string, kind discordgo.ChannelType) *discordgo.Channel {
	if g.channel(parentID) == nil {
		g.t.Errorf("thread %q started in unknown channel %s", name, parentID)
	}
	th := &discordgo.Channel{ID: g.id(), Name: name, Type: kind, ParentID: parentID}
	g.channels = append(g.channels, th)
	return th
}

func (g *fakeGuild) channel(id string) *discordgo.Channel {
	for _, c := range g.channels {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (g *fakeGuild) role(id string) *discordgo.Role {
	if id == testGuildID {
		return g.roles[0]
	}
	for _, r := range g.roles {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// structure renders the guild without IDs so two runs can be compared.
func (g *fakeGuild) structure() []string {
	var out []string
	for _, r := range g.roles {
		out = append(out, fmt.Sprintf("role %s managed=%v", r.Name, r.Managed))
	}
	for _, c := range g.channels {
		parent := ""
		if p := g.channel(c.ParentID); p != nil {
			parent = p.Name
		}
		out = append(out, fmt.Sprintf("channel %s type=%d parent=%s", c.Name, c.Type, parent))
	}
	for _, e := range g.emojis {
		out = append(out, "emoji "+e.Name)
	}
	for _, s := range g.stickers {
		out = append(out, "sticker "+s.Name)
	}
	sort.Strings(out)
	return out
}

func removeBy[T any](items []T, match func(T) bool) []T {
	out := items[:0:0]
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}

// recorder collects every published event in order.
type recorder struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (r *recorder) Publish(_ context.Context, e eventbus.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []eventbus.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]eventbus.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind()
	}
	return out
}

func (r *recorder) count(kind eventbus.Kind) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
