package testutil

import "betbot/domain/entities"

// CreateTestBet creates an open bet with default values
func CreateTestBet(guildID, channelID, ownerID int64) *entities.Bet {
	return &entities.Bet{
		GuildID:   guildID,
		ChannelID: channelID,
		Title:     "Who wins tonight?",
		Amount:    10,
		OwnerID:   ownerID,
	}
}

// CreateTestEntry creates an entry with a normalized choice
func CreateTestEntry(betID, userID int64, choice string) *entities.BetEntry {
	return &entities.BetEntry{
		BetID:      betID,
		UserID:     userID,
		Choice:     choice,
		ChoiceNorm: entities.NormalizeChoice(choice),
	}
}
