package handler

import (
	"context"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type Greeter interface {
	Greet(ctx context.Context, message *domain.Message) error
}

// Greeting welcomes users the first time they send a plain text message. It serves as the bot's default handler.
type Greeting struct {
	greetings port.GreetingStore
	greeter   Greeter
}

func NewGreeting(greetings port.GreetingStore, greeter Greeter) *Greeting {
	return &Greeting{greetings: greetings, greeter: greeter}
}

func (g *Greeting) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	m := update.Message
	if m == nil || m.From == nil || m.Text == "" || strings.HasPrefix(m.Text, "/") {
		return
	}

	if !g.greetings.ShouldGreet(m.From.ID) {
		return
	}

	message := toMessage(m)

	go func() {
		if err := g.greeter.Greet(ctx, message); err != nil {
			log.Err(err).Int64("userId", message.UserID).Msg("failed to greet user")
		}
	}()
}
