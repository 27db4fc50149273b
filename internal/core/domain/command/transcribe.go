package command

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	transcribeUsage    = "❌ Reply to a voice message!"
	transcribeTemplate = "🗣 %s"
	transcribeFailed   = "⚠️ Could not recognize speech."
)

type Transcribe struct {
	transcriber port.Transcriber
	textSender  port.TextSender
	command     string
}

func NewTranscribe(transcriber port.Transcriber, textSender port.TextSender, command string) *Transcribe {
	return &Transcribe{transcriber: transcriber, textSender: textSender, command: command}
}

func (h *Transcribe) GetCommand() string {
	return h.command
}

func (h *Transcribe) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("audioURL", message.AudioURL).
		Str("command", h.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if message.AudioURL == "" {
		return reply(ctx, h.textSender, message, transcribeUsage)
	}

	go h.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	resp, err := h.transcriber.GenerateFromAudio(ctx, message.AudioURL)
	if err != nil {
		return replyFailure(ctx, h.textSender, message, transcribeFailed, fmt.Errorf("transcription: %w", err))
	}

	return reply(ctx, h.textSender, message, fmt.Sprintf(transcribeTemplate, resp))
}
