package locale

// Message ids of the embedded bundles
const (
	MsgPong                       = "Pong"
	MsgGenericError               = "GenericError"
	MsgInvalidOptions             = "InvalidOptions"
	MsgSetChannelForbidden        = "SetChannelForbidden"
	MsgSetChannelDone             = "SetChannelDone"
	MsgBalance                    = "Balance"
	MsgLeaderboardTitle           = "LeaderboardTitle"
	MsgLeaderboardLine            = "LeaderboardLine"
	MsgLeaderboardEmpty           = "LeaderboardEmpty"
	MsgClaimDone                  = "ClaimDone"
	MsgHistoryTitle               = "HistoryTitle"
	MsgHistoryLine                = "HistoryLine"
	MsgHistoryLineBet             = "HistoryLineBet"
	MsgHistoryEmpty               = "HistoryEmpty"
	MsgTransactionInitial         = "TransactionInitial"
	MsgTransactionBetStake        = "TransactionBetStake"
	MsgTransactionBetPayout       = "TransactionBetPayout"
	MsgTransactionDailyClaim      = "TransactionDailyClaim"
	MsgBetCreated                 = "BetCreated"
	MsgListEmpty                  = "ListEmpty"
	MsgListTitle                  = "ListTitle"
	MsgListLine                   = "ListLine"
	MsgMore                       = "More"
	MsgJoined                     = "Joined"
	MsgStatusHeader               = "StatusHeader"
	MsgStatusDetails              = "StatusDetails"
	MsgStatusEntry                = "StatusEntry"
	MsgStatusNoEntries            = "StatusNoEntries"
	MsgStateOpen                  = "StateOpen"
	MsgStateClosed                = "StateClosed"
	MsgStateSettled               = "StateSettled"
	MsgClosed                     = "Closed"
	MsgSettled                    = "Settled"
	MsgNoWinners                  = "NoWinners"
	MsgErrorInvalidInput          = "ErrorInvalidInput"
	MsgErrorChannelNotConfigured  = "ErrorChannelNotConfigured"
	MsgErrorWrongChannel          = "ErrorWrongChannel"
	MsgErrorNotFound              = "ErrorNotFound"
	MsgErrorNotOwner              = "ErrorNotOwner"
	MsgErrorNotOwnerClose         = "ErrorNotOwnerClose"
	MsgErrorNotOwnerSettle        = "ErrorNotOwnerSettle"
	MsgErrorAlreadyClosed         = "ErrorAlreadyClosed"
	MsgErrorAlreadyClosedClose    = "ErrorAlreadyClosedClose"
	MsgErrorNotClosed             = "ErrorNotClosed"
	MsgErrorAlreadySettled        = "ErrorAlreadySettled"
	MsgErrorEmptyTitle            = "ErrorEmptyTitle"
	MsgErrorInvalidAmount         = "ErrorInvalidAmount"
	MsgErrorEmptyChoice           = "ErrorEmptyChoice"
	MsgErrorAlreadyJoined         = "ErrorAlreadyJoined"
	MsgErrorInsufficientFunds     = "ErrorInsufficientFunds"
	MsgErrorNoValidWinningChoices = "ErrorNoValidWinningChoices"
	MsgErrorCooldownActive        = "ErrorCooldownActive"
)
