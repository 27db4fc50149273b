package handler

import (
	"context"
	"fmt"
	"runtime/debug"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Recorder observes every finished command.
type Recorder interface {
	ObserveCommand(command string, elapsed time.Duration, err error)
}

// FileLinker resolves Telegram file IDs to download URLs. *bot.Bot implements it.
type FileLinker interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type dispatcher struct {
	timeout  time.Duration
	recorder Recorder
}

// run executes a command handler, logging its error and recovering from panics.
func (d dispatcher) run(ctx context.Context, cmd string, h port.Command, message *domain.Message) {
	start := time.Now()

	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in command handler: %v", r)
			log.Error().Str("command", cmd).Bytes("stack", debug.Stack()).Msg("recovered from panic")
		}

		if err != nil {
			log.Err(err).Str("command", cmd).Int64("chatId", message.ChatID).Msg("failed to respond to command")
		}

		if d.recorder != nil {
			d.recorder.ObserveCommand(cmd, time.Since(start), err)
		}
	}()

	err = h.Respond(ctx, d.timeout, message)
}

func toMessage(m *models.Message) *domain.Message {
	text := m.Text
	if text == "" {
		text = m.Caption
	}

	message := &domain.Message{
		ID:     m.ID,
		ChatID: m.Chat.ID,
		Text:   text,
	}

	if m.From != nil {
		message.UserID = m.From.ID
		message.Username = getUserNameFromMessage(m.From)
	}

	if reply := m.ReplyToMessage; reply != nil {
		id := reply.ID
		message.ReplyToMessageID = &id
		message.QuotedText = reply.Text

		if reply.From != nil {
			if reply.From.IsBot {
				message.IsReplyToBot = true
			} else {
				message.ReplyToUsername = reply.From.Username
			}
		}
	}

	return message
}

// audioFileID prefers audio attached to the message itself over audio in the message it replies to.
func audioFileID(m *models.Message) string {
	if id := ownAudioFileID(m); id != "" {
		return id
	}

	if m.ReplyToMessage != nil {
		return ownAudioFileID(m.ReplyToMessage)
	}

	return ""
}

func ownAudioFileID(m *models.Message) string {
	switch {
	case m.Voice != nil:
		return m.Voice.FileID
	case m.Audio != nil:
		return m.Audio.FileID
	default:
		return ""
	}
}

func resolveAudioURL(ctx context.Context, linker FileLinker, m *models.Message) string {
	fileID := audioFileID(m)
	if fileID == "" {
		return ""
	}

	f, err := linker.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		log.Error().Err(err).Str("fileId", fileID).Msg("error getting file from telegram api")
		return ""
	}

	return linker.FileDownloadLink(f)
}

func getUserNameFromMessage(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
