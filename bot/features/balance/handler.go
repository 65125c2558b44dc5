package balance

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

var transactionMessages = map[entities.TransactionType]string{
	entities.TransactionTypeInitial:    locale.MsgTransactionInitial,
	entities.TransactionTypeBetStake:   locale.MsgTransactionBetStake,
	entities.TransactionTypeBetPayout:  locale.MsgTransactionBetPayout,
	entities.TransactionTypeDailyClaim: locale.MsgTransactionDailyClaim,
}

func (f *Feature) handleBalance(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	var balance int64
	err := application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		balance, err = svc.Ledger.GetOrInitBalance(ctx, inv.UserID)
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	return common.Message(inv.Printer.T(locale.MsgBalance, locale.Data{"Balance": common.FormatBalance(balance)}))
}

func (f *Feature) handleLeaderboard(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	args, err := common.DecodeLeaderboard(opts)
	if err != nil {
		return common.ErrorResponse(inv, common.InvalidOptions(err), nil)
	}

	var users []*entities.User
	err = application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		users, err = svc.Ledger.TopBalances(ctx, services.ClampLeaderboardLimit(args.Limit))
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	lines := []string{inv.Printer.T(locale.MsgLeaderboardTitle, nil)}
	if len(users) == 0 {
		lines = append(lines, inv.Printer.T(locale.MsgLeaderboardEmpty, nil))
	}
	for rank, user := range users {
		lines = append(lines, inv.Printer.T(locale.MsgLeaderboardLine, locale.Data{
			"Rank":    rank + 1,
			"User":    user.UserID,
			"Balance": common.FormatBalance(user.Balance),
		}))
	}

	return common.Message(common.JoinLines(lines...))
}

func (f *Feature) handleClaim(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	var result *interfaces.ClaimResult
	err := application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		result, err = svc.Ledger.ClaimDaily(ctx, inv.UserID, f.now())
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	return common.Message(inv.Printer.T(locale.MsgClaimDone, locale.Data{
		"Reward":  common.FormatBalance(result.Reward),
		"Balance": common.FormatBalance(result.NewBalance),
	}))
}

func (f *Feature) handleHistory(ctx context.Context, inv *common.Invocation, opts common.OptionMap) *discordgo.InteractionResponse {
	var history []*entities.BalanceHistory
	err := application.RunInUnitOfWork(ctx, f.uowFactory, f.ledgerConfig, func(svc *application.Services) error {
		var err error
		history, err = svc.Ledger.History(ctx, inv.UserID, services.DefaultHistoryLimit)
		return err
	})
	if err != nil {
		return common.ErrorResponse(inv, err, nil)
	}

	lines := []string{inv.Printer.T(locale.MsgHistoryTitle, nil)}
	if len(history) == 0 {
		lines = append(lines, inv.Printer.T(locale.MsgHistoryEmpty, nil))
	}
	for _, h := range history {
		data := locale.Data{
			"Change":  common.FormatChange(h.ChangeAmount),
			"Type":    inv.Printer.T(transactionMessages[h.TransactionType], nil),
			"Balance": common.FormatBalance(h.BalanceAfter),
		}
		id := locale.MsgHistoryLine
		if h.RelatedBetID != nil {
			id = locale.MsgHistoryLineBet
			data["Bet"] = *h.RelatedBetID
		}
		lines = append(lines, inv.Printer.T(id, data))
	}

	// History is personal
	return common.EphemeralMessage(common.JoinLines(lines...))
}
