package command

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

const welcomeText = "👋 Welcome to Ryzex AI\nChoose an option:"

// MenuEntry is one inline button of the welcome menu. Pressing it either replies with Hint or runs Command.
type MenuEntry struct {
	Button  domain.MenuButton
	Hint    string
	Command string
}

var Menu = []MenuEntry{
	{Button: domain.MenuButton{Label: "🤖 Chat", Data: "chat"},
		Hint: "💬 Type /chat <your message> to ask AI anything."},
	{Button: domain.MenuButton{Label: "🌦 Weather", Data: "weather"},
		Hint: "🌦 Type /weather <city> to get live weather updates."},
	{Button: domain.MenuButton{Label: "📰 News", Data: "news"},
		Hint: "📰 Type /news to see top tech news."},
	{Button: domain.MenuButton{Label: "⏰ Reminders", Data: "remind"},
		Hint: "⏰ Type /remind <minutes> <message> to set a reminder."},
	{Button: domain.MenuButton{Label: "🎉 Fun Fact", Data: "fun"}, Command: "/fun"},
	{Button: domain.MenuButton{Label: "❓ Trivia", Data: "trivia"}, Command: "/trivia"},
	{Button: domain.MenuButton{Label: "🖼 AI Image", Data: "image"},
		Hint: "🖼 Type /image <prompt> to generate an AI image."},
	{Button: domain.MenuButton{Label: "🔊 TTS", Data: "tts"},
		Hint: "🔊 Type /say <message> for text-to-speech."},
}

// LookupMenu finds the menu entry for a callback payload.
func LookupMenu(data string) (MenuEntry, bool) {
	for _, e := range Menu {
		if e.Button.Data == data {
			return e, true
		}
	}

	return MenuEntry{}, false
}

type Start struct {
	menuSender port.MenuSender
	greetings  port.GreetingStore
	command    string
}

func NewStart(menuSender port.MenuSender, greetings port.GreetingStore, command string) *Start {
	return &Start{menuSender: menuSender, greetings: greetings, command: command}
}

func (s *Start) GetCommand() string {
	return s.command
}

func (s *Start) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Int64("userId", message.UserID).
		Str("command", s.GetCommand()).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.greetings.MarkGreeted(message.UserID)

	return s.Greet(ctx, message)
}

// Greet sends the welcome menu without touching the greeting store.
func (s *Start) Greet(ctx context.Context, message *domain.Message) error {
	buttons := make([]domain.MenuButton, 0, len(Menu))
	for _, e := range Menu {
		buttons = append(buttons, e.Button)
	}

	if err := s.menuSender.SendMenu(ctx, message, welcomeText, buttons); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
