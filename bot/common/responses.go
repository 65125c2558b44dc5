package common

import (
	"context"

	"betbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Message builds a public channel message reply
func Message(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	}
}

// EphemeralMessage builds a reply only the invoking user sees
func EphemeralMessage(content string) *discordgo.InteractionResponse {
	resp := Message(content)
	resp.Data.Flags = discordgo.MessageFlagsEphemeral
	return resp
}

// ErrorResponse renders err as an ephemeral reply
func ErrorResponse(inv *Invocation, err error, overrides map[entities.ErrorKind]string) *discordgo.InteractionResponse {
	return EphemeralMessage(ErrorText(inv, err, overrides))
}

// Pong is the reply to a PING interaction
func Pong() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}
}

// SubcommandHandler answers one /bet sub-command
type SubcommandHandler func(ctx context.Context, inv *Invocation, opts OptionMap) *discordgo.InteractionResponse
