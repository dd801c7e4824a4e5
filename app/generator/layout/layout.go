// Package layout holds the declarative description of a guild: the roles,
// channel tree, emojis and stickers a generation run materializes.
package layout

// EveryoneRole is the overwrite target naming the guild's implicit default role.
const EveryoneRole = "@everyone"

// Guild is the full target state of one generation run.
type Guild struct {
	Name                        string `yaml:"name,omitempty" json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Icon                        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Banner                      string `yaml:"banner,omitempty" json:"banner,omitempty"`
	Splash                      string `yaml:"splash,omitempty" json:"splash,omitempty"`
	Description                 string `yaml:"description,omitempty" json:"description,omitempty" validate:"max=120"`
	PreferredLocale             string `yaml:"preferredLocale,omitempty" json:"preferredLocale,omitempty"`
	VerificationLevel           *int   `yaml:"verificationLevel,omitempty" json:"verificationLevel,omitempty" validate:"omitempty,min=0,max=4"`
	DefaultMessageNotifications *int   `yaml:"defaultMessageNotifications,omitempty" json:"defaultMessageNotifications,omitempty" validate:"omitempty,min=0,max=1"`
	ExplicitContentFilter       *int   `yaml:"explicitContentFilter,omitempty" json:"explicitContentFilter,omitempty" validate:"omitempty,min=0,max=2"`
	AFKTimeout                  int    `yaml:"afkTimeout,omitempty" json:"afkTimeout,omitempty" validate:"omitempty,oneof=60 300 900 1800 3600"`
	SystemChannelFlags          *int   `yaml:"systemChannelFlags,omitempty" json:"systemChannelFlags,omitempty" validate:"omitempty,min=0"`
	PremiumProgressBarEnabled   *bool  `yaml:"premiumProgressBarEnabled,omitempty" json:"premiumProgressBarEnabled,omitempty"`

	Roles        []RoleSpec     `yaml:"roles,omitempty" json:"roles,omitempty" validate:"dive"`
	Emojis       []EmojiSpec    `yaml:"emojis,omitempty" json:"emojis,omitempty" validate:"dive"`
	Stickers     []StickerSpec  `yaml:"stickers,omitempty" json:"stickers,omitempty" validate:"dive"`
	RootChannels []ChannelSpec  `yaml:"rootChannels,omitempty" json:"rootChannels,omitempty" validate:"dive"`
	Categories   []CategorySpec `yaml:"channels,omitempty" json:"channels,omitempty" validate:"dive"`

	// BaseDir resolves relative image paths. Set by LoadFile.
	BaseDir string `yaml:"-" json:"-"`
}

// HasSettings reports whether any guild-level field outside the entity lists is declared.
func (g *Guild) HasSettings() bool {
	return g.Name != "" || g.Icon != "" || g.Banner != "" || g.Splash != "" ||
		g.Description != "" || g.PreferredLocale != "" || g.VerificationLevel != nil ||
		g.DefaultMessageNotifications != nil || g.ExplicitContentFilter != nil ||
		g.AFKTimeout != 0 || g.SystemChannelFlags != nil || g.PremiumProgressBarEnabled != nil
}

// RoleSpec declares one role. Roles are created in list order.
type RoleSpec struct {
	Name         string       `yaml:"name" json:"name" validate:"required,max=100"`
	Color        int          `yaml:"color,omitempty" json:"color,omitempty" validate:"min=0,max=16777215"`
	Permissions  *Permissions `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	Hoist        bool         `yaml:"hoist,omitempty" json:"hoist,omitempty"`
	Mentionable  bool         `yaml:"mentionable,omitempty" json:"mentionable,omitempty"`
	UnicodeEmoji string       `yaml:"unicodeEmoji,omitempty" json:"unicodeEmoji,omitempty"`
	Icon         string       `yaml:"icon,omitempty" json:"icon,omitempty"`
	// Position, when set, is applied with one reorder call after all roles exist.
	Position *int `yaml:"position,omitempty" json:"position,omitempty" validate:"omitempty,min=1"`
}

// CategorySpec is a top-level category and its channels. A declared type is ignored.
type CategorySpec struct {
	Name       string          `yaml:"name" json:"name" validate:"required,max=100"`
	Kind       string          `yaml:"type,omitempty" json:"type,omitempty"`
	Position   *int            `yaml:"position,omitempty" json:"position,omitempty" validate:"omitempty,min=0"`
	Overwrites []OverwriteSpec `yaml:"permissionOverwrites,omitempty" json:"permissionOverwrites,omitempty" validate:"dive"`
	Children   []ChannelSpec   `yaml:"children,omitempty" json:"children,omitempty" validate:"dive"`
}

// ChannelSpec is a non-category, non-thread channel.
type ChannelSpec struct {
	Name             string          `yaml:"name" json:"name" validate:"required,max=100"`
	Kind             ChannelKind     `yaml:"type" json:"type" validate:"required"`
	Topic            string          `yaml:"topic,omitempty" json:"topic,omitempty" validate:"max=1024"`
	NSFW             bool            `yaml:"nsfw,omitempty" json:"nsfw,omitempty"`
	Bitrate          int             `yaml:"bitrate,omitempty" json:"bitrate,omitempty" validate:"omitempty,min=8000,max=384000"`
	UserLimit        int             `yaml:"userLimit,omitempty" json:"userLimit,omitempty" validate:"min=0,max=99"`
	RateLimitPerUser int             `yaml:"rateLimitPerUser,omitempty" json:"rateLimitPerUser,omitempty" validate:"min=0,max=21600"`
	Position         *int            `yaml:"position,omitempty" json:"position,omitempty" validate:"omitempty,min=0"`
	Overwrites       []OverwriteSpec `yaml:"permissionOverwrites,omitempty" json:"permissionOverwrites,omitempty" validate:"dive"`
	IsRulesChannel   bool            `yaml:"isRulesChannel,omitempty" json:"isRulesChannel,omitempty"`
	IsAFKChannel     bool            `yaml:"isAFKChannel,omitempty" json:"isAFKChannel,omitempty"`
	Children         []ThreadSpec    `yaml:"children,omitempty" json:"children,omitempty" validate:"dive"`
}

// ThreadSpec is a leaf: it has no children field.
type ThreadSpec struct {
	Name                string   `yaml:"name" json:"name" validate:"required,max=100"`
	AutoArchiveDuration int      `yaml:"autoArchiveDuration,omitempty" json:"autoArchiveDuration,omitempty" validate:"omitempty,oneof=60 1440 4320 10080"`
	RateLimitPerUser    int      `yaml:"rateLimitPerUser,omitempty" json:"rateLimitPerUser,omitempty" validate:"min=0,max=21600"`
	Private             bool     `yaml:"private,omitempty" json:"private,omitempty"`
	Invitable           bool     `yaml:"invitable,omitempty" json:"invitable,omitempty"`
	// Message is the starter post of a forum thread. Defaults to Name.
	Message     string   `yaml:"message,omitempty" json:"message,omitempty" validate:"max=2000"`
	AppliedTags []string `yaml:"appliedTags,omitempty" json:"appliedTags,omitempty" validate:"max=5"`
}

// StarterMessage returns the content posted when the thread lives in a forum.
func (t ThreadSpec) StarterMessage() string {
	if t.Message != "" {
		return t.Message
	}
	return t.Name
}

// OverwriteSpec targets exactly one of a declared role (by name or index),
// @everyone, or a member snowflake.
type OverwriteSpec struct {
	Role      string      `yaml:"role,omitempty" json:"role,omitempty"`
	RoleIndex *int        `yaml:"roleIndex,omitempty" json:"roleIndex,omitempty"`
	Member    string      `yaml:"member,omitempty" json:"member,omitempty" validate:"omitempty,numeric"`
	Allow     Permissions `yaml:"allow,omitempty" json:"allow,omitempty"`
	Deny      Permissions `yaml:"deny,omitempty" json:"deny,omitempty"`
}

// EmojiSpec declares a custom emoji. Roles lists declared role names allowed to use it.
type EmojiSpec struct {
	Name  string   `yaml:"name" json:"name" validate:"required,min=2,max=32,emojiname"`
	Image string   `yaml:"image" json:"image" validate:"required"`
	Roles []string `yaml:"roles,omitempty" json:"roles,omitempty"`
}

// StickerSpec declares a custom sticker.
type StickerSpec struct {
	Name        string `yaml:"name" json:"name" validate:"required,min=2,max=30"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" validate:"omitempty,min=2,max=100"`
	Tags        string `yaml:"tags" json:"tags" validate:"required,max=200"`
	Image       string `yaml:"image" json:"image" validate:"required"`
}
