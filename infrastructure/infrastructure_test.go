package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"betbot/domain/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMessagePublisher struct {
	mock.Mock
}

func (m *mockMessagePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func TestEventSubjectMapper(t *testing.T) {
	mapper := NewEventSubjectMapper()

	assert.Equal(t, "betting.bet.settled", mapper.MapEventToSubject(events.BetSettledEvent{}))
	assert.Equal(t, "betting.users.balance_changed", mapper.MapEventToSubject(events.BalanceChangeEvent{}))

	for _, subject := range mapper.GetAllSubjects() {
		eventType := mapper.MapSubjectToEventType(subject)
		assert.Contains(t, subjectsByType, eventType, subject)
	}
	assert.Len(t, mapper.GetAllSubjects(), len(subjectsByType))
}

func TestNATSEventPublisher_Publish(t *testing.T) {
	client := &mockMessagePublisher{}
	publisher := NewNATSEventPublisher(client, NewEventSubjectMapper())
	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	publisher.now = func() time.Time { return fixed }

	var captured []byte
	client.On("Publish", mock.Anything, "betting.bet.settled", mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]byte)
		}).
		Return(nil)

	err := publisher.Publish(events.BetSettledEvent{BetID: 9, Pot: 30, WinnerIDs: []int64{1, 2}, Payout: 15})
	require.NoError(t, err)
	client.AssertExpectations(t)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(captured, &envelope))
	assert.Equal(t, string(events.EventTypeBetSettled), envelope.EventType)
	assert.Equal(t, "betbot", envelope.SourceService)
	assert.True(t, fixed.Equal(envelope.Timestamp))
	_, err = uuid.Parse(envelope.EventID)
	assert.NoError(t, err)

	var payload events.BetSettledEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, int64(15), payload.Payout)
	assert.Equal(t, []int64{1, 2}, payload.WinnerIDs)
}

func TestNATSEventPublisher_PublishError(t *testing.T) {
	client := &mockMessagePublisher{}
	publisher := NewNATSEventPublisher(client, NewEventSubjectMapper())

	client.On("Publish", mock.Anything, "betting.bet.closed", mock.Anything).Return(errors.New("nats down"))

	err := publisher.Publish(events.BetClosedEvent{BetID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nats down")
}

func TestAuditFields(t *testing.T) {
	betID := int64(4)
	fields := auditFields(events.BalanceChangeEvent{
		UserID:       1,
		OldBalance:   100,
		NewBalance:   90,
		ChangeAmount: -10,
		RelatedBetID: &betID,
	})

	assert.Equal(t, events.EventTypeBalanceChange, fields["event"])
	assert.Equal(t, int64(4), fields["bet_id"])
	assert.Equal(t, int64(-10), fields["change"])

	fields = auditFields(events.BetSettledEvent{BetID: 2, WinnerIDs: []int64{1, 2, 3}})
	assert.Equal(t, 3, fields["winners"])
}
