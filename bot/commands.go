package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func betIDOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "bet_id",
		Description: "Bet ID",
		DescriptionLocalizations: map[discordgo.Locale]string{
			discordgo.German: "ID der Bet",
		},
		Required: true,
	}
}

func subcommand(name, description, german string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		DescriptionLocalizations: map[discordgo.Locale]string{
			discordgo.German: german,
		},
		Options: options,
	}
}

// Commands returns the slash command definitions
func Commands() []*discordgo.ApplicationCommand {
	dmPermission := false
	minAmount := float64(1)
	minLimit := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Replies with pong 🏓",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.German: "Antwortet mit pong 🏓",
			},
			DMPermission: &dmPermission,
		},
		{
			Name:        "bet",
			Description: "Manage bets",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.German: "Wetten verwalten",
			},
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("setchannel", "Set the only channel of this server where bets are allowed (mods only)",
					"Den einzigen erlaubten Bet-Channel für diesen Server setzen (nur Mods).",
					&discordgo.ApplicationCommandOption{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Betting channel",
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
						Required:     true,
					}),
				subcommand("create", "Open a new bet", "Neue Bet eröffnen (im erlaubten Channel)",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "title",
						Description: "Title of the bet",
						Required:    true,
					},
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "amount",
						Description: "Stake per player (coins)",
						MinValue:    &minAmount,
						Required:    true,
					}),
				subcommand("list", "List open bets of this channel", "Offene Bets im Channel auflisten"),
				subcommand("join", "Join a bet with a free text pick", "Bei einer Bet mitmachen (freier Text)",
					betIDOption(),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "choice",
						Description: "Your pick (free text)",
						Required:    true,
					}),
				subcommand("status", "Show a bet", "Status einer Bet anzeigen", betIDOption()),
				subcommand("close", "Close a bet (creator only)", "Bet schließen (nur Ersteller)", betIDOption()),
				subcommand("settle", "Settle a bet (several winners, comma separated)",
					"Bet auswerten (mehrere Gewinner, kommagetrennt)",
					betIDOption(),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "winners",
						Description: "Winning outcomes, comma separated",
						Required:    true,
					}),
				subcommand("balance", "Your balance", "Dein Kontostand"),
				subcommand("leaderboard", "Top players", "Top-Spieler",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "limit",
						Description: "Number of players (1-25)",
						MinValue:    &minLimit,
						MaxValue:    25,
					}),
				subcommand("claim", "Claim the daily reward", "Tägliche Belohnung abholen"),
				subcommand("history", "Your recent transactions", "Deine letzten Buchungen"),
			},
		},
	}
}

// RegisterCommands overwrites the application's commands. An empty guildID registers them globally.
func RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	if appID == "" {
		return fmt.Errorf("application id is required")
	}

	registered, err := s.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	scope := "global"
	if guildID != "" {
		scope = "guild " + guildID
	}
	log.WithFields(log.Fields{
		"count": len(registered),
		"scope": scope,
	}).Info("Registered slash commands")
	return nil
}
