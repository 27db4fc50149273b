package command

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	funTemplate = "🎉 Fun Fact:\n%s"
	funFailed   = "⚠️ Couldn't fetch a fun fact right now!"
)

type Fun struct {
	provider   port.FactProvider
	textSender port.TextSender
	command    string
}

func NewFun(provider port.FactProvider, textSender port.TextSender, command string) *Fun {
	return &Fun{provider: provider, textSender: textSender, command: command}
}

func (f *Fun) GetCommand() string {
	return f.command
}

func (f *Fun) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", f.GetCommand()).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fact, err := f.provider.RandomFact(ctx)
	if err != nil {
		return replyFailure(ctx, f.textSender, message, funFailed, fmt.Errorf("fun fact lookup: %w", err))
	}

	return reply(ctx, f.textSender, message, fmt.Sprintf(funTemplate, fact))
}
