package common

import (
	"errors"
	"fmt"

	"betbot/bot/locale"
	"betbot/domain/entities"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidOptions marks a sub-command invoked with missing or malformed options
var ErrInvalidOptions = errors.New("invalid options")

// InvalidOptions wraps an option decoding failure
func InvalidOptions(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
}

// errorMessages maps each domain error kind to its reply
var errorMessages = map[entities.ErrorKind]string{
	entities.KindInvalidInput:          locale.MsgErrorInvalidInput,
	entities.KindChannelNotConfigured:  locale.MsgErrorChannelNotConfigured,
	entities.KindWrongChannel:          locale.MsgErrorWrongChannel,
	entities.KindNotFound:              locale.MsgErrorNotFound,
	entities.KindNotOwner:              locale.MsgErrorNotOwner,
	entities.KindAlreadyClosed:         locale.MsgErrorAlreadyClosed,
	entities.KindNotClosed:             locale.MsgErrorNotClosed,
	entities.KindAlreadySettled:        locale.MsgErrorAlreadySettled,
	entities.KindEmptyTitle:            locale.MsgErrorEmptyTitle,
	entities.KindInvalidAmount:         locale.MsgErrorInvalidAmount,
	entities.KindEmptyChoice:           locale.MsgErrorEmptyChoice,
	entities.KindAlreadyJoined:         locale.MsgErrorAlreadyJoined,
	entities.KindInsufficientFunds:     locale.MsgErrorInsufficientFunds,
	entities.KindNoValidWinningChoices: locale.MsgErrorNoValidWinningChoices,
	entities.KindCooldownActive:        locale.MsgErrorCooldownActive,
}

// ErrorText renders err for the user. Overrides replace the message of specific
// kinds, e.g. a dedicated NotOwner text per sub-command. Errors that are not
// domain errors are logged and rendered as a generic failure.
func ErrorText(inv *Invocation, err error, overrides map[entities.ErrorKind]string) string {
	if errors.Is(err, ErrInvalidOptions) {
		return inv.Printer.T(locale.MsgInvalidOptions, nil)
	}

	domainErr, ok := entities.AsError(err)
	if !ok {
		log.WithFields(log.Fields{
			"user_id":    inv.UserID,
			"guild_id":   inv.GuildID,
			"channel_id": inv.ChannelID,
			"error":      err,
		}).Error("Unexpected error in bot command")
		return inv.Printer.T(locale.MsgGenericError, nil)
	}

	id, found := overrides[domainErr.Kind]
	if !found {
		id = errorMessages[domainErr.Kind]
	}

	return inv.Printer.T(id, locale.Data{
		"Channel":  domainErr.ChannelID,
		"Hours":    domainErr.RetryAfterHours,
		"Required": domainErr.Required,
	})
}
