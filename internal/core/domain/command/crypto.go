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
	cryptoTemplate = "💰 %s Price: %s %s"
	cryptoFailed   = "⚠️ Could not fetch crypto price."

	defaultCoin     = "bitcoin"
	defaultCurrency = "usd"
)

// Crypto answers "/crypto [coin] [currency]" with a spot price.
type Crypto struct {
	provider   port.QuoteProvider
	textSender port.TextSender
	command    string
}

func NewCrypto(provider port.QuoteProvider, textSender port.TextSender, command string) *Crypto {
	return &Crypto{provider: provider, textSender: textSender, command: command}
}

func (c *Crypto) GetCommand() string {
	return c.command
}

func (c *Crypto) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	coin, currency := defaultCoin, defaultCurrency

	tokens := strings.Fields(ParseCommandArgs(message.Text))
	if len(tokens) > 0 {
		coin = strings.ToLower(tokens[0])
	}
	if len(tokens) > 1 {
		currency = strings.ToLower(tokens[1])
	}

	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("coin", coin).
		Str("currency", currency).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q, err := c.provider.Price(ctx, coin, currency)
	if err != nil {
		return replyFailure(ctx, c.textSender, message, cryptoFailed, fmt.Errorf("crypto lookup: %w", err))
	}

	return reply(ctx, c.textSender, message, fmt.Sprintf(cryptoTemplate,
		strings.ToUpper(q.Symbol), strconv.FormatFloat(q.Price, 'f', -1, 64), strings.ToUpper(q.Currency)))
}
