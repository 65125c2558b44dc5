package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	AppID   string
	GuildID string
}

// Bot is the gateway transport: it receives interactions over the websocket session
type Bot struct {
	config     Config
	session    *discordgo.Session
	dispatcher *Dispatcher
}

// New opens a gateway session and registers the slash commands
func New(config Config, dispatcher *Dispatcher) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:     config,
		session:    dg,
		dispatcher: dispatcher,
	}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleInteraction)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	appID := config.AppID
	if appID == "" && dg.State != nil && dg.State.User != nil {
		appID = dg.State.User.ID
	}
	if err := RegisterCommands(dg, appID, config.GuildID); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Gateway session ready")
}

// handleInteraction feeds the dispatcher and sends its reply
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"interaction_id": i.ID,
				"panic":          r,
			}).Error("Interaction handler panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := b.dispatcher.Handle(ctx, i.Interaction)
	if err != nil {
		log.WithFields(log.Fields{
			"interaction_id": i.ID,
			"error":          err,
		}).Warn("Interaction not handled")
		return
	}

	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		log.WithFields(log.Fields{
			"interaction_id": i.ID,
			"error":          err,
		}).Error("Error responding to interaction")
	}
}
