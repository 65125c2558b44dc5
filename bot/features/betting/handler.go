package betting

import (
	"context"

	"betbot/application"
	"betbot/bot/common"
	"betbot/bot/locale"
	"betbot/domain/entities"
	"betbot/domain/interfaces"
	"betbot/domain/services"

	"github.com/bwmarrin/discordgo"
)

var (
	closeErrors = map[entities.ErrorKind]string{
		entities.KindNotOwner:      locale.MsgErrorNotOwnerClose,
		entities.KindAlreadyClosed: locale.MsgErrorAlreadyClosedClose,
	}
	settleErrors = map[entities.ErrorKind]string{
		entities.KindNotOwner: locale.MsgErrorNotOwnerSettle,
	}
)

func (f *Feature) handleCreate(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	args, err := common.DecodeCreate(opts)
	if err != nil {
		return common.ErrorResponse(inv, common.InvalidOptions(err), nil)
	}

	var bet *entities.Bet
	err = application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		bet, err = svc.Bets.Create(ctx, inv.GuildID, inv.ChannelID, inv.UserID, args.Title, args.Amount)
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	return common.Message(inv.Printer.T(locale.MsgBetCreated, locale.Data{
		"ID":     bet.ID,
		"Title":  bet.Title,
		"Amount": bet.Amount,
	}))
}

func (f *Feature) handleList(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	var bets []*entities.Bet
	err := application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		bets, err = svc.Bets.ListOpen(ctx, inv.GuildID, inv.ChannelID)
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	if len(bets) == 0 {
		return common.Message(inv.Printer.T(locale.MsgListEmpty, nil))
	}

	lines := []string{inv.Printer.T(locale.MsgListTitle, nil)}
	for _, bet := range bets[:min(len(bets), common.MaxListedBets)] {
		lines = append(lines, inv.Printer.T(locale.MsgListLine, locale.Data{
			"ID":     bet.ID,
			"Title":  bet.Title,
			"Amount": bet.Amount,
			"Owner":  bet.OwnerID,
		}))
	}
	if hidden := len(bets) - common.MaxListedBets; hidden > 0 {
		lines = append(lines, inv.Printer.Plural(locale.MsgMore, hidden))
	}

	return common.Message(common.JoinLines(lines...))
}

func (f *Feature) handleJoin(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	args, err := common.DecodeJoin(opts)
	if err != nil {
		return common.ErrorResponse(inv, common.InvalidOptions(err), nil)
	}

	var result *interfaces.JoinResult
	err = application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		result, err = svc.Bets.Join(ctx, inv.GuildID, inv.ChannelID, inv.UserID, args.BetID, args.Choice)
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	return common.Message(inv.Printer.T(locale.MsgJoined, locale.Data{
		"ID":     result.Bet.ID,
		"Choice": result.Choice,
		"Pot":    result.Pot,
	}))
}

// handleStatus shows a bet of the configured betting channel
func (f *Feature) handleStatus(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	args, err := common.DecodeBet(opts)
	if err != nil {
		return common.ErrorResponse(inv, common.InvalidOptions(err), nil)
	}

	var snapshot *entities.BetSnapshot
	err = application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		snapshot, err = svc.Bets.SnapshotInChannel(ctx, inv.GuildID, inv.ChannelID, args.BetID)
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	return common.Message(formatStatus(inv.Printer, snapshot))
}

func (f *Feature) handleClose(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	args, err := common.DecodeBet(opts)
	if err != nil {
		return common.ErrorResponse(inv, common.InvalidOptions(err), nil)
	}

	var bet *entities.Bet
	err = application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		bet, err = svc.Bets.Close(ctx, inv.GuildID, inv.ChannelID, inv.UserID, args.BetID)
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, closeErrors)
	}

	return common.Message(inv.Printer.T(locale.MsgClosed, locale.Data{
		"ID":    bet.ID,
		"Title": bet.Title,
	}))
}

func (f *Feature) handleSettle(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	args, err := common.DecodeSettle(opts)
	if err != nil {
		return common.ErrorResponse(inv, common.InvalidOptions(err), nil)
	}

	var result *interfaces.SettlementResult
	err = application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		result, err = svc.Settlement.Settle(ctx, inv.GuildID, inv.ChannelID, inv.UserID, args.BetID, services.ParseWinningChoices(args.Winners))
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, settleErrors)
	}

	winners := inv.Printer.T(locale.MsgNoWinners, nil)
	if len(result.WinnerIDs) > 0 {
		winners = common.Mentions(result.WinnerIDs)
	}

	return common.Message(inv.Printer.T(locale.MsgSettled, locale.Data{
		"ID":      result.Bet.ID,
		"Pot":     result.Pot,
		"Winners": winners,
		"Payout":  result.Payout,
	}))
}
