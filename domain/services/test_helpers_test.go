package services

import (
	"testing"

	"betbot/domain/testhelpers"

	"github.com/stretchr/testify/mock"
)

// Test constants for consistent test data
const (
	TestGuildID        = int64(555555555)
	TestChannelID      = int64(987654321)
	TestOtherChannelID = int64(123123123)
	TestBetID          = int64(1)
	TestOwnerID        = int64(100)
	TestUser1ID        = int64(200)
	TestUser2ID        = int64(300)
	TestUser3ID        = int64(400)
	TestStake          = int64(10)
)

var testLedgerConfig = LedgerConfig{StartingBalance: 100, DailyReward: 10}

// TestMocks aggregates all mocks for testing
type TestMocks struct {
	UserRepo           *testhelpers.MockUserRepository
	BalanceHistoryRepo *testhelpers.MockBalanceHistoryRepository
	GuildSettingsRepo  *testhelpers.MockGuildSettingsRepository
	BetRepo            *testhelpers.MockBetRepository
	EntryRepo          *testhelpers.MockBetEntryRepository
	EventPublisher     *testhelpers.MockEventPublisher
	Ledger             *testhelpers.MockLedgerService
	GuildSettings      *testhelpers.MockGuildSettingsService
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		UserRepo:           &testhelpers.MockUserRepository{},
		BalanceHistoryRepo: &testhelpers.MockBalanceHistoryRepository{},
		GuildSettingsRepo:  &testhelpers.MockGuildSettingsRepository{},
		BetRepo:            &testhelpers.MockBetRepository{},
		EntryRepo:          &testhelpers.MockBetEntryRepository{},
		EventPublisher:     &testhelpers.MockEventPublisher{},
		Ledger:             &testhelpers.MockLedgerService{},
		GuildSettings:      &testhelpers.MockGuildSettingsService{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.UserRepo.AssertExpectations(t)
	m.BalanceHistoryRepo.AssertExpectations(t)
	m.GuildSettingsRepo.AssertExpectations(t)
	m.BetRepo.AssertExpectations(t)
	m.EntryRepo.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
	m.Ledger.AssertExpectations(t)
	m.GuildSettings.AssertExpectations(t)
}

// ExpectChannelAllowed makes the channel policy accept the test channel
func (m *TestMocks) ExpectChannelAllowed() {
	m.GuildSettings.On("RequireChannel", mock.Anything, TestGuildID, TestChannelID).Return(nil)
}

// AllowEvents accepts any published event
func (m *TestMocks) AllowEvents() {
	m.EventPublisher.On("Publish", mock.Anything).Return(nil).Maybe()
}

// NewLedger builds a ledger service over the repository mocks
func (m *TestMocks) NewLedger() *ledgerService {
	return NewLedgerService(m.UserRepo, m.BalanceHistoryRepo, m.EventPublisher, testLedgerConfig).(*ledgerService)
}

// NewBetService builds a bet service over the mocks
func (m *TestMocks) NewBetService() *betService {
	return NewBetService(m.BetRepo, m.EntryRepo, m.Ledger, m.GuildSettings, m.EventPublisher).(*betService)
}

// NewSettlementService builds a settlement service over the mocks
func (m *TestMocks) NewSettlementService() *settlementService {
	return NewSettlementService(m.BetRepo, m.EntryRepo, m.Ledger, m.GuildSettings, m.EventPublisher).(*settlementService)
}
