package command

import (
	"context"
	"errors"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	weatherUsage    = "❌ Provide a city name!"
	weatherTemplate = "🌦 Weather in %s: %s, 🌡 %s°C"
	weatherNotFound = "⚠️ City '%s' not found. Try 'City,CountryCode'"
	weatherFailed   = "⚠️ Error fetching weather!"
)

type Weather struct {
	provider   port.WeatherProvider
	textSender port.TextSender
	command    string
}

func NewWeather(provider port.WeatherProvider, textSender port.TextSender, command string) *Weather {
	return &Weather{provider: provider, textSender: textSender, command: command}
}

func (w *Weather) GetCommand() string {
	return w.command
}

func (w *Weather) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", w.GetCommand()).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := promptArgs{Text: ParseCommandArgs(message.Text)}
	if err := validateArgs(args); err != nil {
		return reply(ctx, w.textSender, message, weatherUsage)
	}

	l.Info().Str("city", args.Text).Msg("handling request")

	go w.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	weather, err := w.provider.Current(ctx, args.Text)
	switch {
	case errors.Is(err, domain.ErrCityNotFound):
		return replyFailure(ctx, w.textSender, message, fmt.Sprintf(weatherNotFound, args.Text), err)
	case err != nil:
		return replyFailure(ctx, w.textSender, message, weatherFailed, fmt.Errorf("weather lookup: %w", err))
	}

	return reply(ctx, w.textSender, message, fmt.Sprintf(weatherTemplate,
		args.Text, weather.Description, strconv.FormatFloat(weather.TemperatureC, 'f', -1, 64)))
}
