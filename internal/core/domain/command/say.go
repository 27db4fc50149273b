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
	sayUsage  = "❌ Provide text to speak."
	sayFailed = "⚠️ Could not generate speech."
)

// Say replies with a spoken rendering of its argument. The synthesized temp file is removed after sending.
type Say struct {
	synthesizer port.SpeechSynthesizer
	store       port.TempStore
	audioSender port.AudioSender
	textSender  port.TextSender
	command     string
}

func NewSay(synthesizer port.SpeechSynthesizer,
	store port.TempStore,
	audioSender port.AudioSender,
	textSender port.TextSender,
	command string) *Say {
	return &Say{synthesizer: synthesizer,
		store:       store,
		audioSender: audioSender,
		textSender:  textSender,
		command:     command}
}

func (s *Say) GetCommand() string {
	return s.command
}

func (s *Say) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := promptArgs{Text: ParseCommandArgs(message.Text)}
	if err := validateArgs(args); err != nil {
		return reply(ctx, s.textSender, message, sayUsage)
	}

	go s.textSender.SendChatAction(ctx, message.ChatID, domain.UploadingVoice)

	path, err := s.synthesizer.SynthesizeToFile(ctx, args.Text)
	if err != nil {
		return replyFailure(ctx, s.textSender, message, sayFailed, fmt.Errorf("error synthesizing speech: %w", err))
	}
	defer s.store.Remove(path)

	audio, err := s.store.Read(path)
	if err != nil {
		return replyFailure(ctx, s.textSender, message, sayFailed, err)
	}

	err = s.audioSender.SendAudioFileReply(ctx, message, audio)
	if err != nil {
		return replyFailure(ctx, s.textSender, message, sayFailed, fmt.Errorf("error sending audio: %w", err))
	}

	return nil
}
