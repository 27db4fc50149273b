package handler

import (
	"context"
	"ryzexbot/internal/core/domain/command"
	"ryzexbot/internal/core/port"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Callback handles presses on the welcome menu buttons. The query is always answered.
type Callback struct {
	dispatcher
	commandRegistry port.CommandRegistry
	menuSender      port.MenuSender
	textSender      port.TextSender
}

func NewCallback(commandRegistry port.CommandRegistry,
	menuSender port.MenuSender,
	textSender port.TextSender,
	timeout time.Duration,
	recorder Recorder) *Callback {
	return &Callback{
		dispatcher:      dispatcher{timeout: timeout, recorder: recorder},
		commandRegistry: commandRegistry,
		menuSender:      menuSender,
		textSender:      textSender,
	}
}

func (c *Callback) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}

	l := log.With().Str("callbackId", cq.ID).Str("data", cq.Data).Logger()

	if err := c.menuSender.AnswerCallback(ctx, cq.ID); err != nil {
		l.Debug().Err(err).Msg("callback left unanswered")
	}

	if cq.Message.Message == nil {
		l.Debug().Msg("callback on inaccessible message")
		return
	}

	entry, ok := command.LookupMenu(cq.Data)
	if !ok {
		l.Warn().Msg("unknown menu entry")
		return
	}

	message := toMessage(cq.Message.Message)
	message.UserID = cq.From.ID
	message.Username = getUserNameFromMessage(&cq.From)

	if entry.Command == "" {
		go func() {
			if _, err := c.textSender.SendMessageReply(ctx, message, entry.Hint); err != nil {
				l.Err(err).Msg("failed to send menu hint")
			}
		}()
		return
	}

	commandHandler, err := c.commandRegistry.Get(entry.Command)
	if err != nil {
		l.Warn().Err(err).Str("command", entry.Command).Msg("menu entry points to unregistered command")
		return
	}

	message.Text = entry.Command

	go c.run(ctx, entry.Command, commandHandler, message)
}
