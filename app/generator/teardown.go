package generator

import (
	"context"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/eventbus"
	"github.com/bwmarrin/discordgo"
)

// teardown deletes emojis, stickers, roles and channels in that order.
// The first failed delete aborts the run.
func (r *run) teardown(ctx context.Context) error {
	s := r.m.session
	opts := r.requestOptions(ctx)

	if r.m.features.Expressions {
		for _, emoji := range r.snap.emojis {
			if emoji == nil {
				continue
			}
			if err := s.GuildEmojiDelete(r.guildID, emoji.ID, opts...); err != nil {
				return NewRemoteError(ActionDelete, guildevents.EntityEmoji, emoji.Name, emoji.ID, err)
			}
			r.emit(ctx, eventbus.EmojiDeleted{Meta: r.meta(), Emoji: emoji})
		}
		for _, sticker := range r.snap.stickers {
			if sticker == nil {
				continue
			}
			if err := s.GuildStickerDelete(r.guildID, sticker.ID, opts...); err != nil {
				return NewRemoteError(ActionDelete, guildevents.EntitySticker, sticker.Name, sticker.ID, err)
			}
			r.emit(ctx, eventbus.StickerDeleted{Meta: r.meta(), Sticker: sticker})
		}
	}

	for _, role := range r.snap.roles {
		if !r.deletableRole(role) {
			continue
		}
		if err := s.GuildRoleDelete(r.guildID, role.ID, opts...); err != nil {
			return NewRemoteError(ActionDelete, guildevents.EntityRole, role.Name, role.ID, err)
		}
		r.emit(ctx, eventbus.RoleDeleted{Meta: r.meta(), Role: role})
	}

	for _, channel := range r.snap.channels {
		if channel == nil || channel.IsThread() {
			continue
		}
		if _, err := s.ChannelDelete(channel.ID, opts...); err != nil {
			return NewRemoteError(ActionDelete, guildevents.EntityChannel, channel.Name, channel.ID, err)
		}
		r.emit(ctx, eventbus.ChannelDeleted{Meta: r.meta(), Channel: channel})
	}
	return nil
}

// deletableRole excludes @everyone, whose ID is the guild's, and integration-managed roles.
func (r *run) deletableRole(role *discordgo.Role) bool {
	return role != nil && role.ID != r.guildID && !role.Managed
}
