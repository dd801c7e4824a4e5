package generator

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// checkAuthority requires the bot's highest role to be the guild's highest role.
// Teardown below a higher role fails halfway, so this runs before any mutation.
func (r *run) checkAuthority(_ context.Context) error {
	highest := highestRole(r.snap.roles, nil)
	held := make(map[string]bool, len(r.snap.member.Roles))
	for _, id := range r.snap.member.Roles {
		held[id] = true
	}
	botHighest := highestRole(r.snap.roles, held)

	err := &InsufficientAuthorityError{GuildID: r.guildID}
	if highest != nil {
		err.HighestRoleID = highest.ID
	}
	if botHighest == nil {
		// A member with no roles only holds @everyone.
		err.BotRoleID = r.guildID
		if highest != nil && highest.ID == r.guildID {
			return nil
		}
		return err
	}
	err.BotRoleID = botHighest.ID
	if highest == nil || botHighest.ID != highest.ID {
		return err
	}
	return nil
}

// highestRole returns the top role, optionally restricted to IDs in only.
func highestRole(roles []*discordgo.Role, only map[string]bool) *discordgo.Role {
	var top *discordgo.Role
	for _, role := range roles {
		if role == nil || (only != nil && !only[role.ID]) {
			continue
		}
		if top == nil || outranks(role, top) {
			top = role
		}
	}
	return top
}

// outranks orders by position, then by the older (smaller) snowflake.
func outranks(a, b *discordgo.Role) bool {
	if a.Position != b.Position {
		return a.Position > b.Position
	}
	return snowflakeLess(a.ID, b.ID)
}

func snowflakeLess(a, b string) bool {
	x, errA := strconv.ParseUint(a, 10, 64)
	y, errB := strconv.ParseUint(b, 10, 64)
	if errA != nil || errB != nil {
		return a < b
	}
	return x < y
}
