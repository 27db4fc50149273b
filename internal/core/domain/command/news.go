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
	newsHeader  = "🔥 Top Tech News:\n\n"
	newsEmpty   = "📰 No headlines right now."
	newsFailed  = "⚠️ Could not fetch news!"
	maxHeadline = 5
)

type News struct {
	provider   port.NewsProvider
	textSender port.TextSender
	command    string
}

func NewNews(provider port.NewsProvider, textSender port.TextSender, command string) *News {
	return &News{provider: provider, textSender: textSender, command: command}
}

func (n *News) GetCommand() string {
	return n.command
}

func (n *News) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", n.GetCommand()).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	headlines, err := n.provider.TopHeadlines(ctx)
	if err != nil {
		return replyFailure(ctx, n.textSender, message, newsFailed, fmt.Errorf("news lookup: %w", err))
	}

	if len(headlines) == 0 {
		return reply(ctx, n.textSender, message, newsEmpty)
	}

	if len(headlines) > maxHeadline {
		headlines = headlines[:maxHeadline]
	}

	lines := make([]string, 0, len(headlines))
	for _, h := range headlines {
		lines = append(lines, fmt.Sprintf("📰 %s (%s)", h.Title, h.Source))
	}

	return reply(ctx, n.textSender, message, newsHeader+strings.Join(lines, "\n\n"))
}
