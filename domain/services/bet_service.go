package services

import (
	"context"
	"fmt"
	"strings"

	"betbot/domain/entities"
	"betbot/domain/events"
	"betbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// betService implements the BetService interface
type betService struct {
	betRepo        interfaces.BetRepository
	entryRepo      interfaces.BetEntryRepository
	ledger         interfaces.LedgerService
	guildSettings  interfaces.GuildSettingsService
	eventPublisher interfaces.EventPublisher
}

// NewBetService creates a new bet service
func NewBetService(
	betRepo interfaces.BetRepository,
	entryRepo interfaces.BetEntryRepository,
	ledger interfaces.LedgerService,
	guildSettings interfaces.GuildSettingsService,
	eventPublisher interfaces.EventPublisher,
) interfaces.BetService {
	return &betService{
		betRepo:        betRepo,
		entryRepo:      entryRepo,
		ledger:         ledger,
		guildSettings:  guildSettings,
		eventPublisher: eventPublisher,
	}
}

// Create opens a new bet in the guild's betting channel
func (s *betService) Create(ctx context.Context, guildID, channelID, ownerID int64, title string, amount int64) (*entities.Bet, error) {
	if err := s.guildSettings.RequireChannel(ctx, guildID, channelID); err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, entities.NewError(entities.KindInvalidAmount, "amount %d", amount)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, entities.ErrEmptyTitle
	}

	bet := &entities.Bet{
		GuildID:   guildID,
		ChannelID: channelID,
		Title:     title,
		Amount:    amount,
		OwnerID:   ownerID,
	}
	if err := s.betRepo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	log.WithFields(log.Fields{
		"bet_id":   bet.ID,
		"guild_id": guildID,
		"owner_id": ownerID,
		"amount":   amount,
	}).Info("Bet created")

	s.publish(events.BetCreatedEvent{
		BetID:     bet.ID,
		GuildID:   guildID,
		ChannelID: channelID,
		OwnerID:   ownerID,
		Title:     title,
		Amount:    amount,
	})

	return bet, nil
}

// Join places the user's stake on choice. The debit and the entry are written in the caller's unit of work.
func (s *betService) Join(ctx context.Context, guildID, channelID, userID, betID int64, choice string) (*interfaces.JoinResult, error) {
	if err := s.guildSettings.RequireChannel(ctx, guildID, channelID); err != nil {
		return nil, err
	}

	bet, err := s.loadForUpdate(ctx, channelID, betID)
	if err != nil {
		return nil, err
	}
	if !bet.IsOpen() {
		return nil, entities.NewError(entities.KindAlreadyClosed, "bet %d", betID)
	}

	choice = strings.TrimSpace(choice)
	normalized := entities.NormalizeChoice(choice)
	if normalized == "" {
		return nil, entities.ErrEmptyChoice
	}

	existing, err := s.entryRepo.GetByBetAndUser(ctx, betID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}
	if existing != nil {
		return nil, entities.NewError(entities.KindAlreadyJoined, "user %d in bet %d", userID, betID)
	}

	newBalance, err := s.ledger.AdjustBalance(ctx, userID, -bet.Amount, entities.TransactionTypeBetStake, &bet.ID)
	if err != nil {
		return nil, err
	}

	entry := &entities.BetEntry{
		BetID:      betID,
		UserID:     userID,
		Choice:     choice,
		ChoiceNorm: normalized,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		if entities.KindOf(err) == entities.KindAlreadyJoined {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	count, err := s.entryRepo.CountByBet(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}
	pot := count * bet.Amount

	s.publish(events.BetJoinedEvent{
		BetID:  betID,
		UserID: userID,
		Choice: choice,
		Pot:    pot,
	})

	return &interfaces.JoinResult{
		Bet:        bet,
		Choice:     choice,
		Pot:        pot,
		NewBalance: newBalance,
	}, nil
}

// Close stops a bet from accepting entries. Only the owner may close.
func (s *betService) Close(ctx context.Context, guildID, channelID, userID, betID int64) (*entities.Bet, error) {
	if err := s.guildSettings.RequireChannel(ctx, guildID, channelID); err != nil {
		return nil, err
	}

	bet, err := s.loadForUpdate(ctx, channelID, betID)
	if err != nil {
		return nil, err
	}
	if bet.OwnerID != userID {
		return nil, entities.NewError(entities.KindNotOwner, "bet %d owned by %d", betID, bet.OwnerID)
	}
	if bet.IsClosed {
		return nil, entities.NewError(entities.KindAlreadyClosed, "bet %d", betID)
	}

	closed, err := s.betRepo.Close(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to close bet: %w", err)
	}
	if !closed {
		return nil, entities.NewError(entities.KindAlreadyClosed, "bet %d", betID)
	}
	bet.IsClosed = true

	s.publish(events.BetClosedEvent{
		BetID:   betID,
		GuildID: guildID,
		OwnerID: userID,
	})

	return bet, nil
}

// ListOpen returns the channel's open bets, newest first
func (s *betService) ListOpen(ctx context.Context, guildID, channelID int64) ([]*entities.Bet, error) {
	if err := s.guildSettings.RequireChannel(ctx, guildID, channelID); err != nil {
		return nil, err
	}

	bets, err := s.betRepo.ListOpen(ctx, guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open bets: %w", err)
	}
	return bets, nil
}

// Snapshot returns the bet and its entries, or nil when the bet does not exist
func (s *betService) Snapshot(ctx context.Context, betID int64) (*entities.BetSnapshot, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, nil
	}

	entries, err := s.entryRepo.GetByBet(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	return &entities.BetSnapshot{Bet: bet, Entries: entries}, nil
}

// SnapshotInChannel applies the channel policy, then returns the snapshot of a bet of channelID.
// Bets of other channels are reported as not found.
func (s *betService) SnapshotInChannel(ctx context.Context, guildID, channelID, betID int64) (*entities.BetSnapshot, error) {
	if err := s.guildSettings.RequireChannel(ctx, guildID, channelID); err != nil {
		return nil, err
	}

	snapshot, err := s.Snapshot(ctx, betID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil || !snapshot.Bet.InChannel(channelID) {
		return nil, entities.NewError(entities.KindNotFound, "bet %d in channel %d", betID, channelID)
	}
	return snapshot, nil
}

// loadForUpdate locks the bet row. Bets of other channels are reported as not found.
func (s *betService) loadForUpdate(ctx context.Context, channelID, betID int64) (*entities.Bet, error) {
	bet, err := s.betRepo.GetByIDForUpdate(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil || !bet.InChannel(channelID) {
		return nil, entities.NewError(entities.KindNotFound, "bet %d in channel %d", betID, channelID)
	}
	return bet, nil
}

func (s *betService) publish(event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to publish event")
	}
}
