package common

import (
	"fmt"
	"strconv"

	"betbot/bot/locale"

	"github.com/bwmarrin/discordgo"
)

// Invocation is the caller context of one slash command
type Invocation struct {
	Interaction *discordgo.Interaction
	GuildID     int64
	ChannelID   int64
	UserID      int64
	Printer     *locale.Printer
}

// NewInvocation extracts ids and the reply language from an interaction.
// A missing guild or channel is reported as 0.
func NewInvocation(i *discordgo.Interaction, catalog *locale.Catalog) (*Invocation, error) {
	inv := &Invocation{Interaction: i}

	var err error
	if inv.GuildID, err = parseOptionalSnowflake(i.GuildID); err != nil {
		return nil, fmt.Errorf("invalid guild id: %w", err)
	}
	if inv.ChannelID, err = parseOptionalSnowflake(i.ChannelID); err != nil {
		return nil, fmt.Errorf("invalid channel id: %w", err)
	}

	var userID string
	switch {
	case i.Member != nil && i.Member.User != nil:
		userID = i.Member.User.ID
	case i.User != nil:
		userID = i.User.ID
	default:
		return nil, fmt.Errorf("interaction has no user")
	}
	if inv.UserID, err = strconv.ParseInt(userID, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	guildLocale := ""
	if i.GuildLocale != nil {
		guildLocale = string(*i.GuildLocale)
	}
	inv.Printer = catalog.Printer(string(i.Locale), guildLocale)

	return inv, nil
}

// Member returns the invoking guild member, nil outside guilds
func (inv *Invocation) Member() *discordgo.Member {
	return inv.Interaction.Member
}

func parseOptionalSnowflake(id string) (int64, error) {
	if id == "" {
		return 0, nil
	}
	return strconv.ParseInt(id, 10, 64)
}
