package command

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	triviaTemplate = "❓ Trivia:\n%s\nOptions: %s"
	triviaFailed   = "⚠️ Trivia not available right now!"
)

type Trivia struct {
	provider   port.TriviaProvider
	textSender port.TextSender
	command    string
}

func NewTrivia(provider port.TriviaProvider, textSender port.TextSender, command string) *Trivia {
	return &Trivia{provider: provider, textSender: textSender, command: command}
}

func (t *Trivia) GetCommand() string {
	return t.command
}

func (t *Trivia) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", t.GetCommand()).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q, err := t.provider.Question(ctx)
	if err != nil {
		return replyFailure(ctx, t.textSender, message, triviaFailed, fmt.Errorf("trivia lookup: %w", err))
	}

	l.Debug().Str("question", q.Question).Str("correct", q.Correct).Msg("trivia question fetched")

	return reply(ctx, t.textSender, message, fmt.Sprintf(triviaTemplate, q.Question, strings.Join(q.Options, ", ")))
}
