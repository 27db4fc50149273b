package sender

import (
	"bytes"
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// TelegramMessageLimit is the maximum number of characters Telegram accepts in one text message.
const TelegramMessageLimit = 4096

const ChatActionRepeatSeconds = 5

// TelegramBot is the subset of *bot.Bot used for outgoing messages.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendAudio(ctx context.Context, params *bot.SendAudioParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

type Telegram struct {
	bot            TelegramBot
	actionInterval time.Duration
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot, actionInterval: ChatActionRepeatSeconds * time.Second}
}

func replyTo(message *domain.Message) *models.ReplyParameters {
	return &models.ReplyParameters{
		MessageID:                message.ID,
		ChatID:                   message.ChatID,
		AllowSendingWithoutReply: true,
	}
}

// SendMessageReply sends text as a reply, split into several messages if it exceeds TelegramMessageLimit. It
// returns the ID of the last message sent.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	var lastID int

	for _, chunk := range splitMessage(text, TelegramMessageLimit) {
		sent, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          message.ChatID,
			Text:            chunk,
			ReplyParameters: replyTo(message),
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send message")
			return lastID, err
		}

		lastID = sent.ID
	}

	return lastID, nil
}

func (s *Telegram) SendImageFileReply(ctx context.Context, message *domain.Message, file []byte) error {
	_, err := s.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: message.ChatID,
		Photo: &models.InputFileUpload{Filename: fmt.Sprintf("%d.png", message.ID),
			Data: bytes.NewReader(file)},
		ReplyParameters: replyTo(message),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send photo response")
		return err
	}

	return nil
}

func (s *Telegram) SendAudioFileReply(ctx context.Context, message *domain.Message, file []byte) error {
	_, err := s.bot.SendAudio(ctx, &bot.SendAudioParams{
		ChatID: message.ChatID,
		Audio: &models.InputFileUpload{Filename: fmt.Sprintf("%d.mp3", message.ID),
			Data: bytes.NewReader(file)},
		ReplyParameters: replyTo(message),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send audio response")
		return err
	}

	return nil
}

func (s *Telegram) SendMenu(ctx context.Context, message *domain.Message, text string,
	buttons []domain.MenuButton) error {
	rows := make([][]models.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []models.InlineKeyboardButton{{Text: b.Label, CallbackData: b.Data}})
	}

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          message.ChatID,
		Text:            text,
		ReplyParameters: replyTo(message),
		ReplyMarkup:     &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send menu")
		return err
	}

	return nil
}

func (s *Telegram) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := s.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callbackID})
	if err != nil {
		log.Warn().Err(err).Str("callbackId", callbackID).Msg("failed to answer callback query")
	}

	return err
}

// NotifyAndReturnError replies with the error text and returns err, or the send failure if the reply could not
// be delivered.
func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	if _, sendErr := s.SendMessageReply(ctx, message, err.Error()); sendErr != nil {
		return fmt.Errorf("%w: %w (after: %w)", domain.ErrSendingReplyFailed, sendErr, err)
	}

	return err
}

// SendChatAction repeats the action until ctx is done, since Telegram clears it after a few seconds.
func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	l := log.With().Int64("chatId", chatID).Str("action", string(action)).Logger()
	l.Debug().Msg("starting action routine")

	ticker := time.NewTicker(s.actionInterval)
	defer ticker.Stop()

	for {
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatAction(action),
		})
		if err != nil {
			if ctx.Err() == nil {
				l.Err(err).Msg("error sending chat action")
			}
			return
		}

		select {
		case <-ctx.Done():
			l.Debug().Msg("done, stopping action routine")
			return
		case <-ticker.C:
		}
	}
}

// splitMessage cuts text into chunks of at most limit runes.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/limit+1)
	for len(runes) > 0 {
		n := min(limit, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}

	return chunks
}
