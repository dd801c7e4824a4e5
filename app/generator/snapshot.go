package generator

import (
	"context"
	"fmt"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/bwmarrin/discordgo"
)

// snapshot is the guild's state before teardown. Deletion works off these lists.
type snapshot struct {
	guild    *discordgo.Guild
	bot      *discordgo.User
	member   *discordgo.Member
	roles    []*discordgo.Role
	channels []*discordgo.Channel
	emojis   []*discordgo.Emoji
	stickers []*discordgo.Sticker
}

func (r *run) loadSnapshot(ctx context.Context) error {
	s := r.m.session
	opt := discordgo.WithContext(ctx)
	snap := &snapshot{}

	guild, err := s.Guild(r.guildID, opt)
	if err != nil {
		return newFetchError(guildevents.EntityGuild, err)
	}
	if guild == nil {
		return newFetchError(guildevents.EntityGuild, fmt.Errorf("guild %s not found", r.guildID))
	}
	snap.guild = guild

	bot, err := s.GetBotUser()
	if err != nil {
		return newFetchError("bot user", err)
	}
	snap.bot = bot

	member, err := s.GuildMember(r.guildID, bot.ID, opt)
	if err != nil {
		return newFetchError("bot member", err)
	}
	snap.member = member

	if snap.roles, err = s.GuildRoles(r.guildID, opt); err != nil {
		return newFetchError(guildevents.EntityRole, err)
	}
	if snap.channels, err = s.GuildChannels(r.guildID, opt); err != nil {
		return newFetchError(guildevents.EntityChannel, err)
	}

	if r.m.features.Expressions {
		if snap.emojis, err = s.GuildEmojis(r.guildID, opt); err != nil {
			return newFetchError(guildevents.EntityEmoji, err)
		}
		if snap.stickers, err = s.GuildStickers(r.guildID, opt); err != nil {
			return newFetchError(guildevents.EntitySticker, err)
		}
	}

	r.snap = snap
	r.guild = guild
	return nil
}
