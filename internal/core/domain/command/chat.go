package command

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	chatUsage    = "❌ Provide a message!"
	chatTemplate = "🤖 AI says:\n%s"
)

type Chat struct {
	textGenerator port.TextGenerator
	textSender    port.TextSender
	command       string

	l *zerolog.Logger
}

func NewChat(textGenerator port.TextGenerator, textSender port.TextSender, command string) *Chat {
	logger := log.With().
		Str("command", command).
		Str("handler", "chat").
		Logger()

	return &Chat{
		textGenerator: textGenerator,
		textSender:    textSender,
		command:       command,
		l:             &logger,
	}
}

func (c *Chat) GetCommand() string {
	return c.command
}

func (c *Chat) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := c.l.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("func", "Respond").
		Logger()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := promptArgs{Text: ParseCommandArgs(message.Text)}
	if err := validateArgs(args); err != nil {
		l.Debug().Err(err).Msg("rejected arguments")
		return reply(ctx, c.textSender, message, chatUsage)
	}

	l.Debug().Str("prompt", args.Text).Str("username", message.Username).Msg("handling request")

	go c.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	response, err := c.textGenerator.GenerateFromPrompt(ctx, args.Text)
	if err != nil {
		// the raw provider error is shown to the user on purpose
		return c.textSender.NotifyAndReturnError(ctx, fmt.Errorf("⚠️ AI error: %w", err), message)
	}

	_, err = c.textSender.SendMessageReply(ctx, message, fmt.Sprintf(chatTemplate, response))
	if err != nil {
		return err
	}

	return nil
}
