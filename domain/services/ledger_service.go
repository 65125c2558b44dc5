package services

import (
	"context"
	"fmt"
	"time"

	"betbot/domain/entities"
	"betbot/domain/events"
	"betbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 25
	DefaultHistoryLimit     = 10
)

// LedgerConfig holds the ledger amounts
type LedgerConfig struct {
	StartingBalance int64
	DailyReward     int64
}

// ledgerService implements the LedgerService interface
type ledgerService struct {
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
	config             LedgerConfig
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
	config LedgerConfig,
) interfaces.LedgerService {
	return &ledgerService{
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		config:             config,
	}
}

// GetOrInitBalance returns the user's balance, creating the account at the starting balance if needed
func (s *ledgerService) GetOrInitBalance(ctx context.Context, userID int64) (int64, error) {
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Balance, nil
}

// AdjustBalance applies delta to the user's balance and records it in the history.
// Debits never take the balance below zero.
func (s *ledgerService) AdjustBalance(ctx context.Context, userID int64, delta int64, transactionType entities.TransactionType, relatedBetID *int64) (int64, error) {
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	if delta == 0 {
		return user.Balance, nil
	}

	var newBalance int64
	if delta < 0 {
		var ok bool
		newBalance, ok, err = s.userRepo.DeductBalance(ctx, userID, -delta)
		if err != nil {
			return 0, fmt.Errorf("failed to deduct balance: %w", err)
		}
		if !ok {
			return 0, entities.NewInsufficientFundsError(-delta, user.Balance)
		}
	} else {
		newBalance, err = s.userRepo.AddBalance(ctx, userID, delta)
		if err != nil {
			return 0, fmt.Errorf("failed to add balance: %w", err)
		}
	}

	if err := s.recordChange(ctx, userID, newBalance-delta, newBalance, transactionType, relatedBetID); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// ClaimDaily grants the daily reward once per 24h
func (s *ledgerService) ClaimDaily(ctx context.Context, userID int64, now time.Time) (*interfaces.ClaimResult, error) {
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.CanClaim(now) {
		return nil, entities.NewCooldownError(user.ClaimRetryHours(now))
	}

	newBalance, ok, err := s.userRepo.ClaimDaily(ctx, userID, s.config.DailyReward, now, now.Add(-entities.DailyClaimCooldown))
	if err != nil {
		return nil, fmt.Errorf("failed to claim daily reward: %w", err)
	}
	if !ok {
		// A concurrent claim won the race, report the fresh cooldown
		current, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload user: %w", err)
		}
		if current == nil {
			return nil, fmt.Errorf("user %d disappeared during claim", userID)
		}
		return nil, entities.NewCooldownError(current.ClaimRetryHours(now))
	}

	if err := s.recordChange(ctx, userID, newBalance-s.config.DailyReward, newBalance, entities.TransactionTypeDailyClaim, nil); err != nil {
		return nil, err
	}

	s.publish(events.DailyClaimedEvent{
		UserID:     userID,
		Reward:     s.config.DailyReward,
		NewBalance: newBalance,
	})

	return &interfaces.ClaimResult{
		Reward:     s.config.DailyReward,
		NewBalance: newBalance,
	}, nil
}

// TopBalances returns the richest accounts. The limit is clamped to 1..25, 0 means the default of 10.
func (s *ledgerService) TopBalances(ctx context.Context, limit int) ([]*entities.User, error) {
	users, err := s.userRepo.GetTopByBalance(ctx, ClampLeaderboardLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return users, nil
}

// History returns the user's most recent balance movements
func (s *ledgerService) History(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	history, err := s.balanceHistoryRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history: %w", err)
	}
	return history, nil
}

// ClampLeaderboardLimit maps a requested limit into 1..MaxLeaderboardLimit
func ClampLeaderboardLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLeaderboardLimit
	case limit > MaxLeaderboardLimit:
		return MaxLeaderboardLimit
	default:
		return limit
	}
}

func (s *ledgerService) ensureUser(ctx context.Context, userID int64) (*entities.User, error) {
	user, created, err := s.userRepo.GetOrCreate(ctx, userID, s.config.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user %d: %w", userID, err)
	}

	if created {
		log.WithFields(log.Fields{
			"user_id": userID,
			"balance": user.Balance,
		}).Debug("Created ledger account")

		if err := s.balanceHistoryRepo.Record(ctx, &entities.BalanceHistory{
			UserID:          userID,
			BalanceBefore:   0,
			BalanceAfter:    user.Balance,
			ChangeAmount:    user.Balance,
			TransactionType: entities.TransactionTypeInitial,
		}); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}

		s.publish(events.UserCreatedEvent{
			UserID:         userID,
			InitialBalance: user.Balance,
		})
	}

	return user, nil
}

func (s *ledgerService) recordChange(ctx context.Context, userID, before, after int64, transactionType entities.TransactionType, relatedBetID *int64) error {
	history := &entities.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   before,
		BalanceAfter:    after,
		ChangeAmount:    after - before,
		TransactionType: transactionType,
		RelatedBetID:    relatedBetID,
	}
	if err := s.balanceHistoryRepo.Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	s.publish(events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      before,
		NewBalance:      after,
		ChangeAmount:    after - before,
		TransactionType: transactionType,
		RelatedBetID:    relatedBetID,
	})
	return nil
}

// publish hands an event to the unit of work's publisher. Delivery happens after commit,
// so a failure here never undoes the ledger change.
func (s *ledgerService) publish(event events.Event) {
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
