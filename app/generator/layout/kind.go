package layout

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gopkg.in/yaml.v3"
)

// ChannelKind is the declared type of a root or category child channel.
type ChannelKind string

const (
	KindText  ChannelKind = "text"
	KindVoice ChannelKind = "voice"
	KindNews  ChannelKind = "news"
	KindStage ChannelKind = "stage"
	KindForum ChannelKind = "forum"
	KindMedia ChannelKind = "media"
)

// ThreadShape selects the remote call used to attach a thread to its parent.
type ThreadShape int

const (
	// ThreadShapeNone means the channel cannot hold threads.
	ThreadShapeNone ThreadShape = iota
	// ThreadShapeMessage starts a standalone thread in a text or news channel.
	ThreadShapeMessage
	// ThreadShapeForum opens a post with a starter message in a forum or media channel.
	ThreadShapeForum
)

// Traits is everything the materializer needs to know about a kind.
type Traits struct {
	ChannelType discordgo.ChannelType
	// TextBased channels can be the guild's rules channel.
	TextBased bool
	// VoiceBased channels can be the guild's AFK channel.
	VoiceBased bool
	Threads    ThreadShape
	// ThreadType is the type of public threads created under the channel.
	ThreadType discordgo.ChannelType
}

// UnknownKindError reports a kind with no entry in the trait table.
type UnknownKindError struct {
	Kind ChannelKind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown channel type %q", string(e.Kind))
}

// Traits looks up the kind in the trait table. Category and thread types are not
// channel kinds and fail like any other unknown value.
func (k ChannelKind) Traits() (Traits, error) {
	switch k {
	case KindText:
		return Traits{
			ChannelType: discordgo.ChannelTypeGuildText,
			TextBased:   true,
			Threads:     ThreadShapeMessage,
			ThreadType:  discordgo.ChannelTypeGuildPublicThread,
		}, nil
	case KindNews:
		return Traits{
			ChannelType: discordgo.ChannelTypeGuildNews,
			TextBased:   true,
			Threads:     ThreadShapeMessage,
			ThreadType:  discordgo.ChannelTypeGuildNewsThread,
		}, nil
	case KindVoice:
		return Traits{ChannelType: discordgo.ChannelTypeGuildVoice, VoiceBased: true}, nil
	case KindStage:
		return Traits{ChannelType: discordgo.ChannelTypeGuildStageVoice, VoiceBased: true}, nil
	case KindForum:
		return Traits{
			ChannelType: discordgo.ChannelTypeGuildForum,
			Threads:     ThreadShapeForum,
			ThreadType:  discordgo.ChannelTypeGuildPublicThread,
		}, nil
	case KindMedia:
		return Traits{
			ChannelType: discordgo.ChannelTypeGuildMedia,
			Threads:     ThreadShapeForum,
			ThreadType:  discordgo.ChannelTypeGuildPublicThread,
		}, nil
	}
	return Traits{}, &UnknownKindError{Kind: k}
}

var kindAliases = map[string]ChannelKind{
	"guild_text":         KindText,
	"guild_voice":        KindVoice,
	"announcement":       KindNews,
	"guild_announcement": KindNews,
	"guild_news":         KindNews,
	"stage_voice":        KindStage,
	"guild_stage_voice":  KindStage,
	"guild_forum":        KindForum,
	"guild_media":        KindMedia,
}

// UnmarshalYAML accepts the canonical names, the platform's GUILD_* names, and
// the numeric channel type.
func (k *ChannelKind) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		kind, ok := kindFromType(discordgo.ChannelType(n))
		if !ok {
			return fmt.Errorf("line %d: unsupported channel type %d", node.Line, n)
		}
		*k = kind
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*k = ParseChannelKind(s)
	return nil
}

// ParseChannelKind normalises s. Unknown values are returned as-is so validation can name them.
func ParseChannelKind(s string) ChannelKind {
	norm := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := kindAliases[norm]; ok {
		return alias
	}
	return ChannelKind(norm)
}

func kindFromType(t discordgo.ChannelType) (ChannelKind, bool) {
	for _, k := range []ChannelKind{KindText, KindVoice, KindNews, KindStage, KindForum, KindMedia} {
		tr, _ := k.Traits()
		if tr.ChannelType == t {
			return k, true
		}
	}
	return "", false
}
