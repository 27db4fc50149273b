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
	imageUsage   = "❌ Provide a prompt!"
	imagePending = "🎨 Generating image..."
	imageFailed  = "⚠️ Could not generate image."
)

type Image struct {
	imageGenerator port.ImageGenerator
	imageSender    port.ImageSender
	textSender     port.TextSender
	command        string
}

func NewImage(imageGenerator port.ImageGenerator,
	imageSender port.ImageSender,
	textSender port.TextSender,
	command string) *Image {
	return &Image{imageGenerator: imageGenerator,
		imageSender: imageSender,
		textSender:  textSender,
		command:     command}
}

func (i *Image) GetCommand() string {
	return i.command
}

func (i *Image) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", i.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := promptArgs{Text: ParseCommandArgs(message.Text)}
	if err := validateArgs(args); err != nil {
		return reply(ctx, i.textSender, message, imageUsage)
	}

	if err := reply(ctx, i.textSender, message, imagePending); err != nil {
		return err
	}

	go i.textSender.SendChatAction(ctx, message.ChatID, domain.UploadingPhoto)

	image, err := i.imageGenerator.GenerateFromPrompt(ctx, args.Text)
	if err != nil {
		return replyFailure(ctx, i.textSender, message, imageFailed, fmt.Errorf("error generating image: %w", err))
	}

	err = i.imageSender.SendImageFileReply(ctx, message, image)
	if err != nil {
		return replyFailure(ctx, i.textSender, message, imageFailed, fmt.Errorf("error sending image: %w", err))
	}

	return nil
}
