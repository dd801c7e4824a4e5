package guild

import (
	"time"
)

// Topic constants for guild generation events
const (
	// GuildGenerationEventTopic carries every lifecycle event of a generation run.
	GuildGenerationEventTopic = "guild.generation.event"
	// GuildGenerationRequestedTopic is published when /generate is accepted.
	GuildGenerationRequestedTopic = "guild.generation.requested"
)

// Entity types carried in GuildGenerationEvent.EntityType.
const (
	EntityGuild   = "guild"
	EntityRole    = "role"
	EntityChannel = "channel"
	EntityThread  = "thread"
	EntityEmoji   = "emoji"
	EntitySticker = "sticker"
)

// GuildGenerationEvent is the wire form of one generator lifecycle event.
type GuildGenerationEvent struct {
	RunID      string    `json:"run_id"`
	Kind       string    `json:"kind"`
	GuildID    string    `json:"guild_id"`
	Reason     string    `json:"reason"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	EntityName string    `json:"entity_name,omitempty"`
	ParentID   string    `json:"parent_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GuildGenerationRequestedEvent records who asked for a run.
type GuildGenerationRequestedEvent struct {
	GuildID     string    `json:"guild_id"`
	RequestedBy string    `json:"requested_by"`
	LayoutPath  string    `json:"layout_path"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}
