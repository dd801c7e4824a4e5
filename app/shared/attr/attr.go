// Package attr holds the slog attribute helpers used across the service so that
// log keys stay consistent between packages.
package attr

import (
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// Error renders err under the "error" key. A nil error renders as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func GuildID(id string) slog.Attr { return slog.String("guild_id", id) }

func RunID(id string) slog.Attr { return slog.String("run_id", id) }

func Operation(name string) slog.Attr { return slog.String("operation", name) }

func Topic(topic string) slog.Attr { return slog.String("topic", topic) }

func DiscordChannelID(id string) slog.Attr { return slog.String("discord_channel_id", id) }

func DiscordRoleID(id string) slog.Attr { return slog.String("discord_role_id", id) }

// MessageID returns the watermill message UUID.
func MessageID(msg *message.Message) slog.Attr {
	if msg == nil {
		return slog.String("message_id", "")
	}
	return slog.String("message_id", msg.UUID)
}

// CorrelationIDFromMsg pulls the correlation id set by the event forwarder.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", ExtractCorrelationID(msg))
}

func ExtractCorrelationID(msg *message.Message) string {
	if msg == nil {
		return ""
	}
	return msg.Metadata.Get(CorrelationIDKey)
}

// CorrelationIDKey is the watermill metadata key carrying the generation run id.
const CorrelationIDKey = "correlation_id"
