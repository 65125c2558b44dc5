package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"betbot/domain/entities"
	"betbot/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_GetOrInitBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("new user starts at the starting balance", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 100}, true, nil)
		mocks.BalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
			return h.UserID == TestUser1ID &&
				h.BalanceBefore == 0 &&
				h.BalanceAfter == 100 &&
				h.TransactionType == entities.TransactionTypeInitial
		})).Return(nil)
		mocks.EventPublisher.On("Publish", events.UserCreatedEvent{UserID: TestUser1ID, InitialBalance: 100}).Return(nil)

		balance, err := ledger.GetOrInitBalance(ctx, TestUser1ID)

		require.NoError(t, err)
		assert.Equal(t, int64(100), balance)
		mocks.AssertAllExpectations(t)
	})

	t.Run("existing user keeps balance", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 42}, false, nil)

		balance, err := ledger.GetOrInitBalance(ctx, TestUser1ID)

		require.NoError(t, err)
		assert.Equal(t, int64(42), balance)
		mocks.BalanceHistoryRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		mocks.AssertAllExpectations(t)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		dbErr := errors.New("connection refused")
		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).Return(nil, false, dbErr)

		_, err := ledger.GetOrInitBalance(ctx, TestUser1ID)

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestLedgerService_AdjustBalance(t *testing.T) {
	ctx := context.Background()
	betID := TestBetID

	t.Run("debit within balance", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 100}, false, nil)
		mocks.UserRepo.On("DeductBalance", ctx, TestUser1ID, int64(30)).Return(int64(70), true, nil)
		mocks.BalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
			return h.BalanceBefore == 100 &&
				h.BalanceAfter == 70 &&
				h.ChangeAmount == -30 &&
				h.TransactionType == entities.TransactionTypeBetStake &&
				h.RelatedBetID != nil && *h.RelatedBetID == TestBetID
		})).Return(nil)
		mocks.EventPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)

		balance, err := ledger.AdjustBalance(ctx, TestUser1ID, -30, entities.TransactionTypeBetStake, &betID)

		require.NoError(t, err)
		assert.Equal(t, int64(70), balance)
		mocks.AssertAllExpectations(t)
	})

	t.Run("debit beyond balance fails without side effects", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 20}, false, nil)
		mocks.UserRepo.On("DeductBalance", ctx, TestUser1ID, int64(30)).Return(int64(0), false, nil)

		_, err := ledger.AdjustBalance(ctx, TestUser1ID, -30, entities.TransactionTypeBetStake, &betID)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
		domainErr, ok := entities.AsError(err)
		require.True(t, ok)
		assert.Equal(t, int64(30), domainErr.Required)
		assert.Equal(t, int64(20), domainErr.Available)
		mocks.BalanceHistoryRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		mocks.EventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("credit", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 5}, false, nil)
		mocks.UserRepo.On("AddBalance", ctx, TestUser1ID, int64(15)).Return(int64(20), nil)
		mocks.BalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
			return h.BalanceBefore == 5 && h.BalanceAfter == 20 && h.ChangeAmount == 15
		})).Return(nil)
		mocks.EventPublisher.On("Publish", events.BalanceChangeEvent{
			UserID:          TestUser1ID,
			OldBalance:      5,
			NewBalance:      20,
			ChangeAmount:    15,
			TransactionType: entities.TransactionTypeBetPayout,
			RelatedBetID:    &betID,
		}).Return(nil)

		balance, err := ledger.AdjustBalance(ctx, TestUser1ID, 15, entities.TransactionTypeBetPayout, &betID)

		require.NoError(t, err)
		assert.Equal(t, int64(20), balance)
		mocks.AssertAllExpectations(t)
	})

	t.Run("zero delta is a no-op", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 50}, false, nil)

		balance, err := ledger.AdjustBalance(ctx, TestUser1ID, 0, entities.TransactionTypeBetPayout, &betID)

		require.NoError(t, err)
		assert.Equal(t, int64(50), balance)
		mocks.AssertAllExpectations(t)
	})
}

func TestLedgerService_ClaimDaily(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first claim succeeds", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 100}, false, nil)
		mocks.UserRepo.On("ClaimDaily", ctx, TestUser1ID, int64(10), now, now.Add(-24*time.Hour)).
			Return(int64(110), true, nil)
		mocks.BalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
			return h.BalanceBefore == 100 &&
				h.BalanceAfter == 110 &&
				h.TransactionType == entities.TransactionTypeDailyClaim
		})).Return(nil)
		mocks.EventPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)
		mocks.EventPublisher.On("Publish", events.DailyClaimedEvent{UserID: TestUser1ID, Reward: 10, NewBalance: 110}).Return(nil)

		result, err := ledger.ClaimDaily(ctx, TestUser1ID, now)

		require.NoError(t, err)
		assert.Equal(t, int64(10), result.Reward)
		assert.Equal(t, int64(110), result.NewBalance)
		mocks.AssertAllExpectations(t)
	})

	t.Run("claim within cooldown reports remaining hours", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		last := now.Add(-23 * time.Hour)
		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 110, LastClaimAt: &last}, false, nil)

		_, err := ledger.ClaimDaily(ctx, TestUser1ID, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrCooldownActive)
		domainErr, _ := entities.AsError(err)
		assert.Equal(t, int64(1), domainErr.RetryAfterHours)
		mocks.UserRepo.AssertNotCalled(t, "ClaimDaily", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent claim loses the race", func(t *testing.T) {
		mocks := NewTestMocks()
		ledger := mocks.NewLedger()

		mocks.UserRepo.On("GetOrCreate", ctx, TestUser1ID, int64(100)).
			Return(&entities.User{UserID: TestUser1ID, Balance: 100}, false, nil)
		mocks.UserRepo.On("ClaimDaily", ctx, TestUser1ID, int64(10), now, now.Add(-24*time.Hour)).
			Return(int64(0), false, nil)
		mocks.UserRepo.On("GetByID", ctx, TestUser1ID).
			Return(&entities.User{UserID: TestUser1ID, Balance: 110, LastClaimAt: &now}, nil)

		_, err := ledger.ClaimDaily(ctx, TestUser1ID, now)

		require.Error(t, err)
		domainErr, ok := entities.AsError(err)
		require.True(t, ok)
		assert.Equal(t, entities.KindCooldownActive, domainErr.Kind)
		assert.Equal(t, int64(24), domainErr.RetryAfterHours)
	})
}

func TestLedgerService_TopBalances(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"default", 0, 10},
		{"within range", 5, 5},
		{"clamped", 100, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := NewTestMocks()
			ledger := mocks.NewLedger()

			users := []*entities.User{{UserID: 1, Balance: 500}, {UserID: 2, Balance: 100}}
			mocks.UserRepo.On("GetTopByBalance", ctx, tt.expected).Return(users, nil)

			result, err := ledger.TopBalances(ctx, tt.limit)

			require.NoError(t, err)
			assert.Equal(t, users, result)
			mocks.AssertAllExpectations(t)
		})
	}
}

func TestLedgerService_History(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	ledger := mocks.NewLedger()

	history := []*entities.BalanceHistory{{ID: 2, UserID: TestUser1ID}, {ID: 1, UserID: TestUser1ID}}
	mocks.BalanceHistoryRepo.On("GetByUser", ctx, TestUser1ID, DefaultHistoryLimit).Return(history, nil)

	result, err := ledger.History(ctx, TestUser1ID, 0)

	require.NoError(t, err)
	assert.Len(t, result, 2)
	mocks.AssertAllExpectations(t)
}
