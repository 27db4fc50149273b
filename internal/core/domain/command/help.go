package command

import (
	"context"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const helpHeader = "🤖 Ryzex AI Commands:"

var helpLines = []struct {
	command string
	line    string
}{
	{"/chat", "/chat <message> → Ask AI"},
	{"/weather", "/weather <city> → Weather updates"},
	{"/news", "/news → Tech news"},
	{"/remind", "/remind <minutes> <message> → Reminders"},
	{"/fun", "/fun → Fun fact"},
	{"/trivia", "/trivia → Trivia game"},
	{"/image", "/image <prompt> → AI generated image"},
	{"/say", "/say <message> → Text-to-speech"},
	{"/crypto", "/crypto [coin] [currency] → Crypto price"},
	{"/stock", "/stock [symbol] → Stock price"},
	{"/transcribe", "/transcribe → Transcribe a replied voice message"},
}

// Help lists the commands that are actually registered.
type Help struct {
	registry   port.CommandRegistry
	textSender port.TextSender
	command    string
}

func NewHelp(registry port.CommandRegistry, textSender port.TextSender, command string) *Help {
	return &Help{registry: registry, textSender: textSender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", h.GetCommand()).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	registered := make(map[string]bool)
	for _, c := range h.registry.ListCommands() {
		registered[c] = true
	}

	var sb strings.Builder
	sb.WriteString(helpHeader)
	for _, hl := range helpLines {
		if registered[hl.command] {
			sb.WriteString("\n")
			sb.WriteString(hl.line)
		}
	}

	return reply(ctx, h.textSender, message, sb.String())
}
