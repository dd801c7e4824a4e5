package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/metrics"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Describe flattens e into its wire form.
func Describe(e Event) guildevents.GuildGenerationEvent {
	m := e.Metadata()
	out := guildevents.GuildGenerationEvent{
		RunID:      m.RunID,
		Kind:       string(e.Kind()),
		GuildID:    m.GuildID,
		Reason:     m.Reason,
		OccurredAt: m.At,
	}

	switch ev := e.(type) {
	case GenerationStarted:
		out.EntityType = guildevents.EntityGuild
		if ev.Guild != nil {
			out.EntityID, out.EntityName = ev.Guild.ID, ev.Guild.Name
		}
	case GenerationFinished:
		out.EntityType = guildevents.EntityGuild
		if ev.Guild != nil {
			out.EntityID, out.EntityName = ev.Guild.ID, ev.Guild.Name
		}
	case RoleDeleted:
		out.EntityType = guildevents.EntityRole
		if ev.Role != nil {
			out.EntityID, out.EntityName = ev.Role.ID, ev.Role.Name
		}
	case RoleCreated:
		out.EntityType = guildevents.EntityRole
		if ev.Role != nil {
			out.EntityID, out.EntityName = ev.Role.ID, ev.Role.Name
		}
	case ChannelDeleted:
		out.EntityType = guildevents.EntityChannel
		if ev.Channel != nil {
			out.EntityID, out.EntityName, out.ParentID = ev.Channel.ID, ev.Channel.Name, ev.Channel.ParentID
		}
	case ChannelCreated:
		out.EntityType = guildevents.EntityChannel
		if ev.Channel != nil {
			out.EntityID, out.EntityName, out.ParentID = ev.Channel.ID, ev.Channel.Name, ev.Channel.ParentID
		}
	case ThreadCreated:
		out.EntityType = guildevents.EntityThread
		if ev.Thread != nil {
			out.EntityID, out.EntityName = ev.Thread.ID, ev.Thread.Name
		}
		if ev.Parent != nil {
			out.ParentID = ev.Parent.ID
		}
	case EmojiDeleted:
		out.EntityType = guildevents.EntityEmoji
		if ev.Emoji != nil {
			out.EntityID, out.EntityName = ev.Emoji.ID, ev.Emoji.Name
		}
	case EmojiCreated:
		out.EntityType = guildevents.EntityEmoji
		if ev.Emoji != nil {
			out.EntityID, out.EntityName = ev.Emoji.ID, ev.Emoji.Name
		}
	case StickerDeleted:
		out.EntityType = guildevents.EntitySticker
		if ev.Sticker != nil {
			out.EntityID, out.EntityName = ev.Sticker.ID, ev.Sticker.Name
		}
	case StickerCreated:
		out.EntityType = guildevents.EntitySticker
		if ev.Sticker != nil {
			out.EntityID, out.EntityName = ev.Sticker.ID, ev.Sticker.Name
		}
	}
	return out
}

// Forwarder returns a listener that republishes every event on a watermill topic.
func Forwarder(pub message.Publisher, topic string) Listener {
	return func(ctx context.Context, e Event) error {
		payload, err := json.Marshal(Describe(e))
		if err != nil {
			return fmt.Errorf("failed to marshal %s event: %w", e.Kind(), err)
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set(attr.CorrelationIDKey, e.Metadata().RunID)
		msg.Metadata.Set("guild_id", e.Metadata().GuildID)
		msg.Metadata.Set("kind", string(e.Kind()))
		msg.SetContext(ctx)
		if err := pub.Publish(topic, msg); err != nil {
			return fmt.Errorf("failed to publish %s event: %w", e.Kind(), err)
		}
		return nil
	}
}

// MetricsListener counts created and deleted entities.
func MetricsListener(m metrics.GeneratorMetrics) Listener {
	return func(_ context.Context, e Event) error {
		d := Describe(e)
		switch e.Kind() {
		case KindRoleDeleted, KindChannelDeleted, KindEmojiDeleted, KindStickerDeleted:
			m.RecordEntityOperation(d.EntityType, "deleted")
		case KindRoleCreated, KindChannelCreated, KindThreadCreated, KindEmojiCreated, KindStickerCreated:
			m.RecordEntityOperation(d.EntityType, "created")
		}
		return nil
	}
}

// LogListener writes one info line per event.
func LogListener(logger *slog.Logger) Listener {
	return func(ctx context.Context, e Event) error {
		d := Describe(e)
		logger.InfoContext(ctx, "Generation event",
			attr.String("kind", d.Kind),
			attr.RunID(d.RunID),
			attr.GuildID(d.GuildID),
			attr.String("entity_type", d.EntityType),
			attr.String("entity_id", d.EntityID),
			attr.String("entity_name", d.EntityName),
			attr.String("parent_id", d.ParentID),
		)
		return nil
	}
}
