package sender

import (
	"context"
	"errors"
	"ryzexbot/internal/core/domain"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}
func (m *MockBot) SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}
func (m *MockBot) SendAudio(ctx context.Context, params *bot.SendAudioParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}
func (m *MockBot) SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}
func (m *MockBot) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

func TestTelegramSender_SendMessageReply(t *testing.T) {
	longText := strings.Repeat("x", TelegramMessageLimit+10)
	longEmoji := strings.Repeat("🔥", TelegramMessageLimit+1)

	tests := []struct {
		name      string
		text      string
		wantCalls int
		setupMock func(mb *MockBot)
		wantErr   bool
	}{
		{
			name:      "single message",
			text:      "hello",
			wantCalls: 1,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
					return params.Text == "hello" && params.ReplyParameters.MessageID == 42
				})).
					Return(&models.Message{ID: 123}, nil).
					Once()
			},
			wantErr: false,
		},
		{
			name:      "message chunked in two",
			text:      longText,
			wantCalls: 2,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
					return len(params.Text) <= TelegramMessageLimit
				})).
					Return(&models.Message{ID: 456}, nil).
					Twice()
			},
			wantErr: false,
		},
		{
			name:      "chunks on rune boundaries",
			text:      longEmoji,
			wantCalls: 2,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
					return utf8.ValidString(params.Text) && utf8.RuneCountInString(params.Text) <= TelegramMessageLimit
				})).
					Return(&models.Message{ID: 789}, nil).
					Twice()
			},
			wantErr: false,
		},
		{
			name:      "send fails on first",
			text:      "fail",
			wantCalls: 1,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("fail")).Once()
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mb := new(MockBot)
			sender := NewTelegram(mb)

			msg := &domain.Message{
				ID:     42,
				ChatID: 1001,
			}

			tc.setupMock(mb)
			_, err := sender.SendMessageReply(t.Context(), msg, tc.text)

			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			mb.AssertNumberOfCalls(t, "SendMessage", tc.wantCalls)
			mb.AssertExpectations(t)
		})
	}
}

func TestTelegramSender_SendImageFileReply(t *testing.T) {
	tests := []struct {
		name    string
		file    []byte
		retErr  error
		wantErr bool
	}{
		{
			name:    "success",
			file:    []byte("pngdata"),
			retErr:  nil,
			wantErr: false,
		},
		{
			name:    "fail send",
			file:    []byte("fake"),
			retErr:  errors.New("fail"),
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mb := new(MockBot)
			sender := NewTelegram(mb)

			msg := &domain.Message{ID: 33, ChatID: 44}
			mb.On("SendPhoto", mock.Anything, mock.Anything).
				Return(&models.Message{}, tc.retErr).Once()

			err := sender.SendImageFileReply(t.Context(), msg, tc.file)

			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			mb.AssertExpectations(t)
		})
	}
}

func TestTelegramSender_SendAudioFileReply(t *testing.T) {
	mb := new(MockBot)
	sender := NewTelegram(mb)

	msg := &domain.Message{ID: 7, ChatID: 8}
	mb.On("SendAudio", mock.Anything, mock.MatchedBy(func(params *bot.SendAudioParams) bool {
		upload, ok := params.Audio.(*models.InputFileUpload)
		return ok && upload.Filename == "7.mp3" && params.ChatID == int64(8)
	})).Return(&models.Message{}, nil).Once()

	require.NoError(t, sender.SendAudioFileReply(t.Context(), msg, []byte("ID3")))
	mb.AssertExpectations(t)
}

func TestTelegramSender_SendMenu(t *testing.T) {
	mb := new(MockBot)
	sender := NewTelegram(mb)

	buttons := []domain.MenuButton{{Label: "🤖 Chat", Data: "chat"}, {Label: "🎉 Fun Fact", Data: "fun"}}

	mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
		markup, ok := params.ReplyMarkup.(*models.InlineKeyboardMarkup)
		if !ok || len(markup.InlineKeyboard) != 2 {
			return false
		}
		return markup.InlineKeyboard[0][0].CallbackData == "chat" && markup.InlineKeyboard[1][0].Text == "🎉 Fun Fact"
	})).Return(&models.Message{ID: 1}, nil).Once()

	require.NoError(t, sender.SendMenu(t.Context(), &domain.Message{ID: 1, ChatID: 2}, "welcome", buttons))
	mb.AssertExpectations(t)
}

func TestTelegramSender_AnswerCallback(t *testing.T) {
	mb := new(MockBot)
	sender := NewTelegram(mb)

	mb.On("AnswerCallbackQuery", mock.Anything, &bot.AnswerCallbackQueryParams{CallbackQueryID: "cb-1"}).
		Return(true, nil).Once()

	require.NoError(t, sender.AnswerCallback(t.Context(), "cb-1"))
	mb.AssertExpectations(t)
}

func TestTelegramSender_NotifyAndReturnError(t *testing.T) {
	tests := []struct {
		name          string
		sendMsgRetErr error
		originalErr   error
	}{
		{
			name:          "send ok",
			sendMsgRetErr: nil,
			originalErr:   errors.New("original"),
		},
		{
			name:          "send fails",
			sendMsgRetErr: errors.New("sendfail"),
			originalErr:   errors.New("original"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mb := new(MockBot)
			sender := NewTelegram(mb)

			msg := &domain.Message{ID: 55, ChatID: 88}
			mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
				return params.Text == "original"
			})).Return(&models.Message{ID: 101}, tc.sendMsgRetErr)

			err := sender.NotifyAndReturnError(t.Context(), tc.originalErr, msg)

			require.ErrorIs(t, err, tc.originalErr)
			if tc.sendMsgRetErr != nil {
				require.ErrorIs(t, err, domain.ErrSendingReplyFailed)
			}
			mb.AssertExpectations(t)
		})
	}
}

func TestSendChatAction_RepeatsAndStopsOnContextCancel(t *testing.T) {
	mb := new(MockBot)
	sender := NewTelegram(mb)
	sender.actionInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(t.Context())
	chatID := int64(12345)

	var calls atomic.Int32
	mb.On("SendChatAction", mock.Anything, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatAction(domain.Typing),
	}).Run(func(mock.Arguments) { calls.Add(1) }).Return(true, nil)

	done := make(chan struct{})
	go func() {
		sender.SendChatAction(ctx, chatID, domain.Typing)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("chat action routine did not stop")
	}
}
