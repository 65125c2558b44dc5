package infrastructure

import (
	"context"

	"betbot/domain/events"
	eventbus "betbot/events"

	log "github.com/sirupsen/logrus"
)

// ForwardEvents relays every event emitted on the bus to publisher
func ForwardEvents(bus *eventbus.Bus, publisher *NATSEventPublisher) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		if err := publisher.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to forward event")
		}
	})
}

// RegisterAuditLog writes one structured log line per committed domain event
func RegisterAuditLog(bus *eventbus.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		log.WithFields(auditFields(event)).Info("Domain event")
	})
}

func auditFields(event events.Event) log.Fields {
	fields := log.Fields{"event": event.Type()}

	switch e := event.(type) {
	case events.BalanceChangeEvent:
		fields["user_id"] = e.UserID
		fields["old_balance"] = e.OldBalance
		fields["new_balance"] = e.NewBalance
		fields["change"] = e.ChangeAmount
		fields["transaction_type"] = e.TransactionType
		if e.RelatedBetID != nil {
			fields["bet_id"] = *e.RelatedBetID
		}
	case events.UserCreatedEvent:
		fields["user_id"] = e.UserID
		fields["initial_balance"] = e.InitialBalance
	case events.DailyClaimedEvent:
		fields["user_id"] = e.UserID
		fields["reward"] = e.Reward
	case events.BetCreatedEvent:
		fields["bet_id"] = e.BetID
		fields["guild_id"] = e.GuildID
		fields["owner_id"] = e.OwnerID
		fields["amount"] = e.Amount
	case events.BetJoinedEvent:
		fields["bet_id"] = e.BetID
		fields["user_id"] = e.UserID
		fields["choice"] = e.Choice
	case events.BetClosedEvent:
		fields["bet_id"] = e.BetID
	case events.BetSettledEvent:
		fields["bet_id"] = e.BetID
		fields["pot"] = e.Pot
		fields["winners"] = len(e.WinnerIDs)
		fields["payout"] = e.Payout
	}

	return fields
}
