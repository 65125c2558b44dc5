package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures. The dispatcher renders each kind as a user message.
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "invalid_input"
	KindChannelNotConfigured  ErrorKind = "channel_not_configured"
	KindWrongChannel          ErrorKind = "wrong_channel"
	KindNotFound              ErrorKind = "not_found"
	KindNotOwner              ErrorKind = "not_owner"
	KindAlreadyClosed         ErrorKind = "already_closed"
	KindNotClosed             ErrorKind = "not_closed"
	KindAlreadySettled        ErrorKind = "already_settled"
	KindEmptyTitle            ErrorKind = "empty_title"
	KindInvalidAmount         ErrorKind = "invalid_amount"
	KindEmptyChoice           ErrorKind = "empty_choice"
	KindAlreadyJoined         ErrorKind = "already_joined"
	KindInsufficientFunds     ErrorKind = "insufficient_funds"
	KindNoValidWinningChoices ErrorKind = "no_valid_winning_choices"
	KindCooldownActive        ErrorKind = "cooldown_active"
)

// Error is a domain failure. Extra fields are only set for the kinds that carry them.
type Error struct {
	Kind    ErrorKind
	Message string

	// ChannelID is the configured betting channel (WrongChannel)
	ChannelID int64
	// RetryAfterHours is the remaining cooldown rounded up (CooldownActive)
	RetryAfterHours int64
	// Required and Available describe a failed debit (InsufficientFunds)
	Required  int64
	Available int64
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of the carried details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrInvalidInput          = &Error{Kind: KindInvalidInput}
	ErrChannelNotConfigured  = &Error{Kind: KindChannelNotConfigured}
	ErrWrongChannel          = &Error{Kind: KindWrongChannel}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrNotOwner              = &Error{Kind: KindNotOwner}
	ErrAlreadyClosed         = &Error{Kind: KindAlreadyClosed}
	ErrNotClosed             = &Error{Kind: KindNotClosed}
	ErrAlreadySettled        = &Error{Kind: KindAlreadySettled}
	ErrEmptyTitle            = &Error{Kind: KindEmptyTitle}
	ErrInvalidAmount         = &Error{Kind: KindInvalidAmount}
	ErrEmptyChoice           = &Error{Kind: KindEmptyChoice}
	ErrAlreadyJoined         = &Error{Kind: KindAlreadyJoined}
	ErrInsufficientFunds     = &Error{Kind: KindInsufficientFunds}
	ErrNoValidWinningChoices = &Error{Kind: KindNoValidWinningChoices}
	ErrCooldownActive        = &Error{Kind: KindCooldownActive}
)

// NewError creates a domain error with a message for logs
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewWrongChannelError reports that betting happens in configuredChannelID
func NewWrongChannelError(configuredChannelID int64) *Error {
	return &Error{
		Kind:      KindWrongChannel,
		Message:   fmt.Sprintf("betting channel is %d", configuredChannelID),
		ChannelID: configuredChannelID,
	}
}

// NewCooldownError reports the hours left until the next daily claim
func NewCooldownError(retryAfterHours int64) *Error {
	return &Error{
		Kind:            KindCooldownActive,
		Message:         fmt.Sprintf("retry in %dh", retryAfterHours),
		RetryAfterHours: retryAfterHours,
	}
}

// NewInsufficientFundsError reports a debit the balance can't cover
func NewInsufficientFundsError(required, available int64) *Error {
	return &Error{
		Kind:      KindInsufficientFunds,
		Message:   fmt.Sprintf("required %d, available %d", required, available),
		Required:  required,
		Available: available,
	}
}

// AsError extracts the domain error from err, if any
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// KindOf returns the kind of the domain error in err, or "" for other errors
func KindOf(err error) ErrorKind {
	if domainErr, ok := AsError(err); ok {
		return domainErr.Kind
	}
	return ""
}
