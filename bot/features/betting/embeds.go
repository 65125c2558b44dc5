package betting

import (
	"betbot/bot/common"
	"betbot/bot/locale"
	"betbot/domain/entities"
)

var stateMessages = map[entities.BetState]string{
	entities.BetStateOpen:    locale.MsgStateOpen,
	entities.BetStateClosed:  locale.MsgStateClosed,
	entities.BetStateSettled: locale.MsgStateSettled,
}

// formatStatus renders a bet with up to MaxListedEntries entries in submission order
func formatStatus(p *locale.Printer, snapshot *entities.BetSnapshot) string {
	bet := snapshot.Bet

	lines := []string{
		p.T(locale.MsgStatusHeader, locale.Data{"ID": bet.ID, "Title": bet.Title}),
		p.T(locale.MsgStatusDetails, locale.Data{
			"Amount": bet.Amount,
			"State":  p.T(stateMessages[bet.State()], nil),
			"Owner":  bet.OwnerID,
			"Count":  len(snapshot.Entries),
		}),
	}

	if len(snapshot.Entries) == 0 {
		lines = append(lines, p.T(locale.MsgStatusNoEntries, nil))
	}
	for _, entry := range snapshot.Entries[:min(len(snapshot.Entries), common.MaxListedEntries)] {
		lines = append(lines, p.T(locale.MsgStatusEntry, locale.Data{
			"User":   entry.UserID,
			"Choice": entry.Choice,
		}))
	}
	if hidden := len(snapshot.Entries) - common.MaxListedEntries; hidden > 0 {
		lines = append(lines, p.Plural(locale.MsgMore, hidden))
	}

	return common.JoinLines(lines...)
}
