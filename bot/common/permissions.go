package common

import "github.com/bwmarrin/discordgo"

// Permission bits that allow configuring the betting channel
const (
	permissionAdministrator int64 = 0x8
	permissionManageGuild   int64 = 0x20
)

// HasModPermission reports whether the member holds ADMINISTRATOR or MANAGE_GUILD
// in its resolved channel permissions
func HasModPermission(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	return member.Permissions&permissionAdministrator != 0 || member.Permissions&permissionManageGuild != 0
}
