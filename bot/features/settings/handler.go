package settings

import (
	"context"

	"betbot/application"
	"betbot/bot/common"
	"betbot/bot/locale"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleSetChannel handles /bet setchannel. Only members with ADMINISTRATOR or
// MANAGE_GUILD may pick the channel.
func (f *Feature) handleSetChannel(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	if !common.HasModPermission(inv.Member()) {
		return common.EphemeralMessage(inv.Printer.T(locale.MsgSetChannelForbidden, nil))
	}

	args, err := common.DecodeSetChannel(opts)
	if err != nil {
		return common.ErrorResponse(inv, common.InvalidOptions(err), nil)
	}

	err = application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		return svc.GuildSettings.SetChannel(ctx, inv.GuildID, args.ChannelID)
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	log.WithFields(log.Fields{
		"guild_id":   inv.GuildID,
		"channel_id": args.ChannelID,
		"user_id":    inv.UserID,
	}).Info("Betting channel configured")

	return common.Message(inv.Printer.T(locale.MsgSetChannelDone, locale.Data{"Channel": args.ChannelID}))
}
