package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gopkg.in/yaml.v3"
)

// Permissions is a permission bitfield. In layout files it is written either as
// an integer (or decimal string) or as a list of permission names.
type Permissions int64

var permissionNames = map[string]int64{
	"CREATE_INSTANT_INVITE":      discordgo.PermissionCreateInstantInvite,
	"KICK_MEMBERS":               discordgo.PermissionKickMembers,
	"BAN_MEMBERS":                discordgo.PermissionBanMembers,
	"ADMINISTRATOR":              discordgo.PermissionAdministrator,
	"MANAGE_CHANNELS":            discordgo.PermissionManageChannels,
	"MANAGE_GUILD":               discordgo.PermissionManageServer,
	"ADD_REACTIONS":              discordgo.PermissionAddReactions,
	"VIEW_AUDIT_LOG":             discordgo.PermissionViewAuditLogs,
	"PRIORITY_SPEAKER":           discordgo.PermissionVoicePrioritySpeaker,
	"STREAM":                     discordgo.PermissionVoiceStreamVideo,
	"VIEW_CHANNEL":               discordgo.PermissionViewChannel,
	"SEND_MESSAGES":              discordgo.PermissionSendMessages,
	"SEND_TTS_MESSAGES":          discordgo.PermissionSendTTSMessages,
	"MANAGE_MESSAGES":            discordgo.PermissionManageMessages,
	"EMBED_LINKS":                discordgo.PermissionEmbedLinks,
	"ATTACH_FILES":               discordgo.PermissionAttachFiles,
	"READ_MESSAGE_HISTORY":       discordgo.PermissionReadMessageHistory,
	"MENTION_EVERYONE":           discordgo.PermissionMentionEveryone,
	"USE_EXTERNAL_EMOJIS":        discordgo.PermissionUseExternalEmojis,
	"VIEW_GUILD_INSIGHTS":        discordgo.PermissionViewGuildInsights,
	"CONNECT":                    discordgo.PermissionVoiceConnect,
	"SPEAK":                      discordgo.PermissionVoiceSpeak,
	"MUTE_MEMBERS":               discordgo.PermissionVoiceMuteMembers,
	"DEAFEN_MEMBERS":             discordgo.PermissionVoiceDeafenMembers,
	"MOVE_MEMBERS":               discordgo.PermissionVoiceMoveMembers,
	"USE_VAD":                    discordgo.PermissionVoiceUseVAD,
	"CHANGE_NICKNAME":            discordgo.PermissionChangeNickname,
	"MANAGE_NICKNAMES":           discordgo.PermissionManageNicknames,
	"MANAGE_ROLES":               discordgo.PermissionManageRoles,
	"MANAGE_WEBHOOKS":            discordgo.PermissionManageWebhooks,
	"MANAGE_EMOJIS_AND_STICKERS": discordgo.PermissionManageEmojis,
	"MANAGE_GUILD_EXPRESSIONS":   discordgo.PermissionManageEmojis,
	"USE_APPLICATION_COMMANDS":   discordgo.PermissionUseSlashCommands,
	"REQUEST_TO_SPEAK":           discordgo.PermissionVoiceRequestToSpeak,
	"MANAGE_EVENTS":              discordgo.PermissionManageEvents,
	"MANAGE_THREADS":             discordgo.PermissionManageThreads,
	"CREATE_PUBLIC_THREADS":      discordgo.PermissionCreatePublicThreads,
	"CREATE_PRIVATE_THREADS":     discordgo.PermissionCreatePrivateThreads,
	"USE_EXTERNAL_STICKERS":      discordgo.PermissionUseExternalStickers,
	"SEND_MESSAGES_IN_THREADS":   discordgo.PermissionSendMessagesInThreads,
	"USE_EMBEDDED_ACTIVITIES":    discordgo.PermissionUseActivities,
	"MODERATE_MEMBERS":           discordgo.PermissionModerateMembers,
}

// ParsePermissionNames ORs the named flags together.
func ParsePermissionNames(names []string) (Permissions, error) {
	var p Permissions
	for _, name := range names {
		bit, ok := permissionNames[strings.ToUpper(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown permission %q", name)
		}
		p |= Permissions(bit)
	}
	return p, nil
}

// Names lists the known flags set in p, sorted. Aliases are reported once.
func (p Permissions) Names() []string {
	seen := map[int64]bool{}
	var out []string
	for name, bit := range permissionNames {
		if int64(p)&bit == 0 || name == "MANAGE_GUILD_EXPRESSIONS" || seen[bit] {
			continue
		}
		seen[bit] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (p *Permissions) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		parsed, err := ParsePermissionNames(names)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*p = parsed
		return nil
	case yaml.ScalarNode:
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			parsed, nameErr := ParsePermissionNames([]string{node.Value})
			if nameErr != nil {
				return fmt.Errorf("line %d: permissions must be a bitfield or a list of names", node.Line)
			}
			*p = parsed
			return nil
		}
		if n < 0 {
			return fmt.Errorf("line %d: permissions cannot be negative", node.Line)
		}
		*p = Permissions(n)
		return nil
	}
	return fmt.Errorf("line %d: permissions must be a bitfield or a list of names", node.Line)
}
