package entities

// GuildSettings holds per-guild configuration
type GuildSettings struct {
	GuildID          int64 `json:"guild_id"`
	BettingChannelID int64 `json:"betting_channel_id"`
}
