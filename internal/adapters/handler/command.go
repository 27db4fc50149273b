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

// Command routes slash commands to the registered handler. Each command runs on its own goroutine.
type Command struct {
	dispatcher
	commandRegistry port.CommandRegistry
}

func NewCommand(commandRegistry port.CommandRegistry, timeout time.Duration, recorder Recorder) *Command {
	return &Command{dispatcher: dispatcher{timeout: timeout, recorder: recorder}, commandRegistry: commandRegistry}
}

func (c *Command) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		log.Debug().Msg("update without message")
		return
	}

	message := toMessage(update.Message)

	log.Debug().Str("message", message.Text).Msg("received command")

	cmd := command.ParseCommand(message.Text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Err(err).Str("command", cmd).Msg("no handler for command")
		return
	}

	go func() {
		if b != nil {
			message.AudioURL = resolveAudioURL(ctx, b, update.Message)
		}

		c.run(ctx, cmd, commandHandler, message)
	}()
}
