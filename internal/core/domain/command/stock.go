package command

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	stockTemplate = "📈 %s Price: %s"
	stockFailed   = "⚠️ Could not fetch stock price."

	defaultSymbol = "AAPL"
)

type Stock struct {
	provider   port.QuoteProvider
	textSender port.TextSender
	command    string
}

func NewStock(provider port.QuoteProvider, textSender port.TextSender, command string) *Stock {
	return &Stock{provider: provider, textSender: textSender, command: command}
}

func (s *Stock) GetCommand() string {
	return s.command
}

func (s *Stock) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	symbol := defaultSymbol
	if tokens := strings.Fields(ParseCommandArgs(message.Text)); len(tokens) > 0 {
		symbol = strings.ToUpper(tokens[0])
	}

	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("symbol", symbol).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q, err := s.provider.Price(ctx, symbol, "")
	if err != nil {
		return replyFailure(ctx, s.textSender, message, stockFailed, fmt.Errorf("stock lookup: %w", err))
	}

	return reply(ctx, s.textSender, message,
		fmt.Sprintf(stockTemplate, q.Symbol, strconv.FormatFloat(q.Price, 'f', -1, 64)))
}
