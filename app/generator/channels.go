package generator

import (
	"context"
	"errors"
	"fmt"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/eventbus"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/bwmarrin/discordgo"
)

func (r *run) createRootChannels(ctx context.Context) error {
	for i := range r.layout.RootChannels {
		if err := r.createChannel(ctx, &r.layout.RootChannels[i], ""); err != nil {
			return err
		}
	}
	return nil
}

// createCategories creates each category, then its channels under it.
func (r *run) createCategories(ctx context.Context) error {
	for i := range r.layout.Categories {
		spec := &r.layout.Categories[i]
		overwrites, err := r.overwrites(spec.Overwrites)
		if err != nil {
			return fmt.Errorf("category %q: %w", spec.Name, err)
		}

		data := discordgo.GuildChannelCreateData{
			Name:                 spec.Name,
			Type:                 discordgo.ChannelTypeGuildCategory,
			PermissionOverwrites: overwrites,
		}
		if spec.Position != nil {
			data.Position = *spec.Position
		}

		category, err := r.m.session.GuildChannelCreateComplex(r.guildID, data, r.requestOptions(ctx)...)
		if err == nil && (category == nil || category.ID == "") {
			err = errors.New("empty channel returned")
		}
		if err != nil {
			return NewRemoteError(ActionCreate, guildevents.EntityChannel, spec.Name, "", err)
		}
		r.emit(ctx, eventbus.ChannelCreated{Meta: r.meta(), Channel: category, Category: spec})

		for j := range spec.Children {
			if err := r.createChannel(ctx, &spec.Children[j], category.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// createChannel creates one channel, applies its rules/AFK designation and creates its threads.
func (r *run) createChannel(ctx context.Context, spec *layout.ChannelSpec, parentID string) error {
	traits, err := spec.Kind.Traits()
	if err != nil {
		return fmt.Errorf("channel %q: %w", spec.Name, err)
	}
	overwrites, err := r.overwrites(spec.Overwrites)
	if err != nil {
		return fmt.Errorf("channel %q: %w", spec.Name, err)
	}

	data := discordgo.GuildChannelCreateData{
		Name:                 spec.Name,
		Type:                 traits.ChannelType,
		Topic:                spec.Topic,
		Bitrate:              spec.Bitrate,
		UserLimit:            spec.UserLimit,
		RateLimitPerUser:     spec.RateLimitPerUser,
		PermissionOverwrites: overwrites,
		ParentID:             parentID,
		NSFW:                 spec.NSFW,
	}
	if spec.Position != nil {
		data.Position = *spec.Position
	}

	channel, err := r.m.session.GuildChannelCreateComplex(r.guildID, data, r.requestOptions(ctx)...)
	if err == nil && (channel == nil || channel.ID == "") {
		err = errors.New("empty channel returned")
	}
	if err != nil {
		return NewRemoteError(ActionCreate, guildevents.EntityChannel, spec.Name, "", err)
	}
	r.emit(ctx, eventbus.ChannelCreated{Meta: r.meta(), Channel: channel, Spec: spec})

	if spec.IsRulesChannel && traits.TextBased {
		r.designate(ctx, "rules", &discordgo.GuildParams{RulesChannelID: channel.ID})
	}
	if spec.IsAFKChannel && traits.VoiceBased {
		r.designate(ctx, "afk", &discordgo.GuildParams{AfkChannelID: channel.ID})
	}

	return r.createThreads(ctx, channel, traits, spec.Children)
}

// designate points a guild setting at a new channel. Failure is logged and the run continues.
func (r *run) designate(ctx context.Context, setting string, params *discordgo.GuildParams) {
	guild, err := r.m.session.GuildEdit(r.guildID, params, r.requestOptions(ctx)...)
	if err != nil {
		r.m.logger.WarnContext(ctx, "Failed to designate channel",
			attr.GuildID(r.guildID),
			attr.RunID(r.runID),
			attr.String("setting", setting),
			attr.Error(err),
		)
		return
	}
	if guild != nil {
		r.guild = guild
	}
}

func (r *run) createThreads(ctx context.Context, parent *discordgo.Channel, traits layout.Traits, specs []layout.ThreadSpec) error {
	if len(specs) == 0 {
		return nil
	}

	for _, spec := range specs {
		var (
			thread *discordgo.Channel
			err    error
		)
		switch traits.Threads {
		case layout.ThreadShapeMessage:
			start := &discordgo.ThreadStart{
				Name:                spec.Name,
				AutoArchiveDuration: spec.AutoArchiveDuration,
				Type:                traits.ThreadType,
				Invitable:           spec.Invitable,
				RateLimitPerUser:    spec.RateLimitPerUser,
			}
			if spec.Private {
				start.Type = discordgo.ChannelTypeGuildPrivateThread
			}
			thread, err = r.m.session.ThreadStartComplex(parent.ID, start, r.requestOptions(ctx)...)
		case layout.ThreadShapeForum:
			thread, err = r.m.session.ForumThreadStartComplex(parent.ID, &discordgo.ThreadStart{
				Name:                spec.Name,
				AutoArchiveDuration: spec.AutoArchiveDuration,
				RateLimitPerUser:    spec.RateLimitPerUser,
				AppliedTags:         spec.AppliedTags,
			}, &discordgo.MessageSend{Content: spec.StarterMessage()}, r.requestOptions(ctx)...)
		case layout.ThreadShapeNone:
			return fmt.Errorf("channel %q cannot hold threads", parent.Name)
		default:
			return fmt.Errorf("channel %q: unknown thread shape %d", parent.Name, traits.Threads)
		}

		if err == nil && thread == nil {
			err = errors.New("empty thread returned")
		}
		if err != nil {
			return NewRemoteError(ActionCreate, guildevents.EntityThread, spec.Name, "", err)
		}
		r.emit(ctx, eventbus.ThreadCreated{Meta: r.meta(), Thread: thread, Parent: parent, Spec: spec})
	}
	return nil
}

// overwrites resolves declared targets to the IDs created earlier in this run.
func (r *run) overwrites(specs []layout.OverwriteSpec) ([]*discordgo.PermissionOverwrite, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]*discordgo.PermissionOverwrite, 0, len(specs))
	for _, spec := range specs {
		ow := &discordgo.PermissionOverwrite{
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: int64(spec.Allow),
			Deny:  int64(spec.Deny),
		}
		switch {
		case spec.Member != "":
			ow.Type = discordgo.PermissionOverwriteTypeMember
			ow.ID = spec.Member
		case spec.RoleIndex != nil:
			idx := *spec.RoleIndex
			if idx < 0 || idx >= len(r.roleOrder) {
				return nil, fmt.Errorf("role index %d was not created", idx)
			}
			ow.ID = r.roleOrder[idx].ID
		case spec.Role == layout.EveryoneRole:
			ow.ID = r.guildID
		default:
			id, ok := r.roleIDs[spec.Role]
			if !ok {
				return nil, fmt.Errorf("role %q was not created", spec.Role)
			}
			ow.ID = id
		}
		out = append(out, ow)
	}
	return out, nil
}
