package cmd

import (
	"fmt"

	"betbot/bot"
	"betbot/config"

	"github.com/bwmarrin/discordgo"
)

// RegisterCommands overwrites the slash commands over REST without opening a gateway session
func RegisterCommands() error {
	cfg := config.Get()
	cfg.ConfigureLogging()

	if cfg.DiscordToken == "" || cfg.AppID == "" {
		return fmt.Errorf("DISCORD_TOKEN and DISCORD_APP_ID are required to register commands")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("error creating discord session: %w", err)
	}

	return bot.RegisterCommands(session, cfg.AppID, cfg.GuildID)
}
