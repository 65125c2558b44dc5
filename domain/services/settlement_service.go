package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"betbot/domain/entities"
	"betbot/domain/events"
	"betbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// settlementService implements the SettlementService interface
type settlementService struct {
	betRepo        interfaces.BetRepository
	entryRepo      interfaces.BetEntryRepository
	ledger         interfaces.LedgerService
	guildSettings  interfaces.GuildSettingsService
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	betRepo interfaces.BetRepository,
	entryRepo interfaces.BetEntryRepository,
	ledger interfaces.LedgerService,
	guildSettings interfaces.GuildSettingsService,
	eventPublisher interfaces.EventPublisher,
) interfaces.SettlementService {
	return &settlementService{
		betRepo:        betRepo,
		entryRepo:      entryRepo,
		ledger:         ledger,
		guildSettings:  guildSettings,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

// Settle splits the pot evenly among users whose choice matches one of winningChoices.
// The remainder of the integer division stays unpaid. A bet can be settled once.
func (s *settlementService) Settle(ctx context.Context, guildID, channelID, userID, betID int64, winningChoices []string) (*interfaces.SettlementResult, error) {
	if err := s.guildSettings.RequireChannel(ctx, guildID, channelID); err != nil {
		return nil, err
	}

	bet, err := s.betRepo.GetByIDForUpdate(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil || !bet.InChannel(channelID) {
		return nil, entities.NewError(entities.KindNotFound, "bet %d in channel %d", betID, channelID)
	}
	if bet.OwnerID != userID {
		return nil, entities.NewError(entities.KindNotOwner, "bet %d owned by %d", betID, bet.OwnerID)
	}
	if !bet.IsClosed {
		return nil, entities.NewError(entities.KindNotClosed, "bet %d", betID)
	}
	if bet.IsSettled() {
		return nil, entities.NewError(entities.KindAlreadySettled, "bet %d", betID)
	}

	winningSet := normalizeWinningChoices(winningChoices)
	if len(winningSet) == 0 {
		return nil, entities.ErrNoValidWinningChoices
	}

	entries, err := s.entryRepo.GetByBet(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	pot := int64(len(entries)) * bet.Amount
	winnerIDs := selectWinners(entries, winningSet)

	var payout int64
	if len(winnerIDs) > 0 {
		payout = pot / int64(len(winnerIDs))
	}

	for _, winnerID := range winnerIDs {
		if _, err := s.ledger.AdjustBalance(ctx, winnerID, payout, entities.TransactionTypeBetPayout, &bet.ID); err != nil {
			return nil, fmt.Errorf("failed to pay out winner %d: %w", winnerID, err)
		}
	}

	settledAt := s.now().UTC()
	marked, err := s.betRepo.MarkSettled(ctx, betID, settledAt)
	if err != nil {
		return nil, fmt.Errorf("failed to mark bet settled: %w", err)
	}
	if !marked {
		return nil, entities.NewError(entities.KindAlreadySettled, "bet %d", betID)
	}
	bet.SettledAt = &settledAt

	log.WithFields(log.Fields{
		"bet_id":  betID,
		"pot":     pot,
		"winners": len(winnerIDs),
		"payout":  payout,
	}).Info("Bet settled")

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(events.BetSettledEvent{
			BetID:     betID,
			GuildID:   guildID,
			Pot:       pot,
			WinnerIDs: winnerIDs,
			Payout:    payout,
		}); err != nil {
			log.WithError(err).Error("Failed to publish bet settled event")
		}
	}

	return &interfaces.SettlementResult{
		Bet:       bet,
		Pot:       pot,
		WinnerIDs: winnerIDs,
		Payout:    payout,
	}, nil
}

// ParseWinningChoices splits a comma separated list, trimming items and dropping blanks
func ParseWinningChoices(raw string) []string {
	parts := strings.Split(raw, ",")
	choices := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			choices = append(choices, trimmed)
		}
	}
	return choices
}

func normalizeWinningChoices(choices []string) map[string]struct{} {
	set := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		if normalized := entities.NormalizeChoice(choice); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return set
}

// selectWinners returns distinct winning users in entry order
func selectWinners(entries []*entities.BetEntry, winningSet map[string]struct{}) []int64 {
	seen := make(map[int64]struct{})
	winners := make([]int64, 0)
	for _, entry := range entries {
		if _, ok := winningSet[entry.ChoiceNorm]; !ok {
			continue
		}
		if _, dup := seen[entry.UserID]; dup {
			continue
		}
		seen[entry.UserID] = struct{}{}
		winners = append(winners, entry.UserID)
	}
	return winners
}
