package infrastructure

import (
	"fmt"

	"betbot/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

var subjectsByType = map[events.EventType]string{
	events.EventTypeBalanceChange: "betting.users.balance_changed",
	events.EventTypeUserCreated:   "betting.users.created",
	events.EventTypeDailyClaimed:  "betting.users.daily_claimed",
	events.EventTypeBetCreated:    "betting.bet.created",
	events.EventTypeBetJoined:     "betting.bet.joined",
	events.EventTypeBetClosed:     "betting.bet.closed",
	events.EventTypeBetSettled:    "betting.bet.settled",
}

// MapEventToSubject converts a domain event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := subjectsByType[event.Type()]; ok {
		return subject
	}
	return fmt.Sprintf("betting.unknown.%s", event.Type())
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	for eventType, s := range subjectsByType {
		if s == subject {
			return eventType
		}
	}
	return events.EventType(subject)
}

// GetAllSubjects returns every subject this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"betting.users.balance_changed",
		"betting.users.created",
		"betting.users.daily_claimed",
		"betting.bet.created",
		"betting.bet.joined",
		"betting.bet.closed",
		"betting.bet.settled",
	}
}
