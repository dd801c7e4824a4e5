package generator

import (
	"context"
	"errors"
	"fmt"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/eventbus"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/bwmarrin/discordgo"
)

// createRoles creates roles in declared order, then applies explicit positions
// with a single reorder.
func (r *run) createRoles(ctx context.Context) error {
	opts := r.requestOptions(ctx)
	var positioned []*discordgo.Role

	for _, spec := range r.layout.Roles {
		params, err := r.roleParams(ctx, spec)
		if err != nil {
			return err
		}
		role, err := r.m.session.GuildRoleCreate(r.guildID, params, opts...)
		if err == nil && (role == nil || role.ID == "") {
			err = errors.New("empty role returned")
		}
		if err != nil {
			return NewRemoteError(ActionCreate, guildevents.EntityRole, spec.Name, "", err)
		}

		r.roleIDs[spec.Name] = role.ID
		r.roleOrder = append(r.roleOrder, role)
		if spec.Position != nil {
			positioned = append(positioned, &discordgo.Role{ID: role.ID, Position: *spec.Position})
		}
		r.emit(ctx, eventbus.RoleCreated{Meta: r.meta(), Role: role, Spec: spec})
	}

	if len(positioned) == 0 {
		return nil
	}
	if _, err := r.m.session.GuildRoleReorder(r.guildID, positioned, opts...); err != nil {
		return NewRemoteError(ActionUpdate, guildevents.EntityRole, "positions", "", err)
	}
	return nil
}

func (r *run) roleParams(ctx context.Context, spec layout.RoleSpec) (*discordgo.RoleParams, error) {
	color, hoist, mentionable := spec.Color, spec.Hoist, spec.Mentionable
	params := &discordgo.RoleParams{
		Name:        spec.Name,
		Color:       &color,
		Hoist:       &hoist,
		Mentionable: &mentionable,
	}
	if spec.Permissions != nil {
		perms := int64(*spec.Permissions)
		params.Permissions = &perms
	}
	if spec.UnicodeEmoji != "" {
		emoji := spec.UnicodeEmoji
		params.UnicodeEmoji = &emoji
	}
	if spec.Icon != "" {
		icon, err := r.dataURI(ctx, guildevents.EntityRole, spec.Name, spec.Icon)
		if err != nil {
			return nil, err
		}
		params.Icon = &icon
	}
	return params, nil
}

// createExpressions creates emojis, then stickers. Stickers need a boosted guild and are
// skipped without error at the lowest premium tier.
func (r *run) createExpressions(ctx context.Context) error {
	if !r.m.features.Expressions {
		return nil
	}
	opts := r.requestOptions(ctx)

	for _, spec := range r.layout.Emojis {
		image, err := r.dataURI(ctx, guildevents.EntityEmoji, spec.Name, spec.Image)
		if err != nil {
			return err
		}
		roles := make([]string, 0, len(spec.Roles))
		for _, name := range spec.Roles {
			id, ok := r.roleIDs[name]
			if !ok {
				return fmt.Errorf("emoji %q: role %q was not created", spec.Name, name)
			}
			roles = append(roles, id)
		}

		emoji, err := r.m.session.GuildEmojiCreate(r.guildID, &discordgo.EmojiParams{
			Name:  spec.Name,
			Image: image,
			Roles: roles,
		}, opts...)
		if err == nil && emoji == nil {
			err = errors.New("empty emoji returned")
		}
		if err != nil {
			return NewRemoteError(ActionCreate, guildevents.EntityEmoji, spec.Name, "", err)
		}
		r.emit(ctx, eventbus.EmojiCreated{Meta: r.meta(), Emoji: emoji, Spec: spec})
	}

	if len(r.layout.Stickers) == 0 {
		return nil
	}
	if r.snap.guild.PremiumTier == discordgo.PremiumTierNone {
		r.m.logger.InfoContext(ctx, "Skipping stickers: guild has no premium tier",
			attr.GuildID(r.guildID),
			attr.Int("stickers", len(r.layout.Stickers)),
		)
		return nil
	}

	for _, spec := range r.layout.Stickers {
		asset, err := r.m.assets.Load(ctx, spec.Image, r.layout.BaseDir)
		if err != nil {
			return fmt.Errorf("sticker %q: %w", spec.Name, err)
		}
		sticker, err := r.m.session.GuildStickerCreate(r.guildID, &discord.StickerParams{
			Name:        spec.Name,
			Description: spec.Description,
			Tags:        spec.Tags,
			File:        asset.File(),
		}, opts...)
		if err == nil && sticker == nil {
			err = errors.New("empty sticker returned")
		}
		if err != nil {
			return NewRemoteError(ActionCreate, guildevents.EntitySticker, spec.Name, "", err)
		}
		r.emit(ctx, eventbus.StickerCreated{Meta: r.meta(), Sticker: sticker, Spec: spec})
	}
	return nil
}

// applySettings sends the guild-level fields in one edit. Nothing is sent when none are declared.
func (r *run) applySettings(ctx context.Context) error {
	g := r.layout
	if !g.HasSettings() {
		return nil
	}

	params := &discordgo.GuildParams{
		Name:                      g.Name,
		Description:               g.Description,
		PreferredLocale:           discordgo.Locale(g.PreferredLocale),
		AfkTimeout:                g.AFKTimeout,
		PremiumProgressBarEnabled: g.PremiumProgressBarEnabled,
	}
	if g.VerificationLevel != nil {
		level := discordgo.VerificationLevel(*g.VerificationLevel)
		params.VerificationLevel = &level
	}
	if g.DefaultMessageNotifications != nil {
		params.DefaultMessageNotifications = *g.DefaultMessageNotifications
	}
	if g.ExplicitContentFilter != nil {
		params.ExplicitContentFilter = *g.ExplicitContentFilter
	}
	if g.SystemChannelFlags != nil {
		params.SystemChannelFlags = discordgo.SystemChannelFlag(*g.SystemChannelFlags)
	}

	for _, image := range []struct {
		field string
		ref   string
		dst   *string
	}{
		{"icon", g.Icon, &params.Icon},
		{"banner", g.Banner, &params.Banner},
		{"splash", g.Splash, &params.Splash},
	} {
		if image.ref == "" {
			continue
		}
		uri, err := r.dataURI(ctx, guildevents.EntityGuild, image.field, image.ref)
		if err != nil {
			return err
		}
		*image.dst = uri
	}

	guild, err := r.m.session.GuildEdit(r.guildID, params, r.requestOptions(ctx)...)
	if err != nil {
		return NewRemoteError(ActionUpdate, guildevents.EntityGuild, "", r.guildID, err)
	}
	if guild != nil {
		r.guild = guild
	}
	return nil
}

func (r *run) dataURI(ctx context.Context, entity, name, ref string) (string, error) {
	asset, err := r.m.assets.Load(ctx, ref, r.layout.BaseDir)
	if err != nil {
		return "", fmt.Errorf("%s %q: %w", entity, name, err)
	}
	return asset.DataURI(), nil
}
