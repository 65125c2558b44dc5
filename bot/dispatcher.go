package bot

import (
	"context"
	"errors"
	"fmt"

	"betbot/application"
	"betbot/bot/common"
	"betbot/bot/features/balance"
	"betbot/bot/features/betting"
	"betbot/bot/features/settings"
	"betbot/bot/locale"
	"betbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Dispatch failures the transports answer with a client error
var (
	ErrUnknownInteraction = errors.New("unknown interaction type")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownSubcommand  = errors.New("unknown /bet subcommand")
	ErrMalformed          = errors.New("malformed interaction")
)

// Dispatcher maps interactions to replies. It is shared by the webhook and gateway transports.
type Dispatcher struct {
	catalog     *locale.Catalog
	subcommands map[string]common.SubcommandHandler

	balance  *balance.Feature
	betting  *betting.Feature
	settings *settings.Feature
}

// NewDispatcher wires the feature modules
func NewDispatcher(uowFactory application.UnitOfWorkFactory, ledgerConfig services.LedgerConfig, catalog *locale.Catalog) *Dispatcher {
	d := &Dispatcher{
		catalog:     catalog,
		subcommands: make(map[string]common.SubcommandHandler),
		balance:     balance.New(uowFactory, ledgerConfig),
		betting:     betting.New(uowFactory, ledgerConfig),
		settings:    settings.NewFeature(uowFactory, ledgerConfig),
	}

	for _, feature := range []interface {
		Subcommands() map[string]common.SubcommandHandler
	}{d.settings, d.balance, d.betting} {
		for name, handler := range feature.Subcommands() {
			d.subcommands[name] = handler
		}
	}

	return d
}

// Balance returns the ledger feature
func (d *Dispatcher) Balance() *balance.Feature {
	return d.balance
}

// Handle answers one interaction. Domain failures are replies; only interactions
// the bot does not understand produce an error.
func (d *Dispatcher) Handle(ctx context.Context, i *discordgo.Interaction) (*discordgo.InteractionResponse, error) {
	switch i.Type {
	case discordgo.InteractionPing:
		return common.Pong(), nil
	case discordgo.InteractionApplicationCommand:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownInteraction, i.Type)
	}

	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok {
		return nil, fmt.Errorf("%w: missing command data", ErrMalformed)
	}

	inv, err := common.NewInvocation(i, d.catalog)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch data.Name {
	case "ping":
		return common.Message(inv.Printer.T(locale.MsgPong, nil)), nil
	case "bet":
		return d.handleBet(ctx, inv, data.Options)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, data.Name)
	}
}

func (d *Dispatcher) handleBet(ctx context.Context, inv *common.Invocation, options []*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponse, error) {
	if len(options) == 0 || options[0] == nil {
		return nil, ErrUnknownSubcommand
	}
	sub := options[0]

	handler, ok := d.subcommands[sub.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubcommand, sub.Name)
	}

	log.WithFields(log.Fields{
		"subcommand": sub.Name,
		"user_id":    inv.UserID,
		"guild_id":   inv.GuildID,
		"channel_id": inv.ChannelID,
	}).Debug("Handling /bet command")

	return handler(ctx, inv, common.NewOptionMap(sub.Options)), nil
}
