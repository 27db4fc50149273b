package command

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	remindUsage    = "⚠️ Usage: /remind <minutes> <message>"
	remindAck      = "✅ Reminder set for %d min!"
	remindTemplate = "⏰ Reminder: %s"
	remindFailed   = "⚠️ Could not set reminder right now."
)

// Remind acknowledges immediately and hands the countdown to the scheduler.
type Remind struct {
	scheduler  port.ReminderScheduler
	textSender port.TextSender
	command    string

	l *zerolog.Logger
}

func NewRemind(scheduler port.ReminderScheduler, textSender port.TextSender, command string) *Remind {
	logger := log.With().Str("command", command).Str("handler", "remind").Logger()

	return &Remind{scheduler: scheduler, textSender: textSender, command: command, l: &logger}
}

func (r *Remind) GetCommand() string {
	return r.command
}

func (r *Remind) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := r.l.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args, err := parseRemindArgs(ParseCommandArgs(message.Text))
	if err != nil {
		l.Debug().Err(err).Msg("rejected arguments")
		return reply(ctx, r.textSender, message, remindUsage)
	}

	if err := reply(ctx, r.textSender, message, fmt.Sprintf(remindAck, args.Minutes)); err != nil {
		return err
	}

	id, err := r.scheduler.Schedule(domain.ReminderTask{
		ChatID:    message.ChatID,
		MessageID: message.ID,
		UserID:    message.UserID,
		Message:   args.Message,
		Delay:     time.Duration(args.Minutes) * time.Minute,
	}, r.deliver)
	if err != nil {
		return replyFailure(ctx, r.textSender, message, remindFailed, fmt.Errorf("scheduling reminder: %w", err))
	}

	l.Info().Str("reminderId", id).Int("minutes", args.Minutes).Msg("reminder accepted")

	return nil
}

func (r *Remind) deliver(ctx context.Context, task domain.ReminderTask) {
	_, err := r.textSender.SendMessageReply(ctx,
		&domain.Message{ID: task.MessageID, ChatID: task.ChatID},
		fmt.Sprintf(remindTemplate, task.Message))
	if err != nil {
		r.l.Warn().Err(err).Str("reminderId", task.ID).Int64("chatId", task.ChatID).Msg("failed to deliver reminder")
	}
}

func parseRemindArgs(raw string) (remindArgs, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return remindArgs{}, fmt.Errorf("%w: missing minutes", domain.ErrInvalidArguments)
	}

	minutes, err := strconv.Atoi(tokens[0])
	if err != nil {
		return remindArgs{}, fmt.Errorf("%w: minutes: %w", domain.ErrInvalidArguments, err)
	}

	args := remindArgs{Minutes: minutes, Message: strings.Join(tokens[1:], " ")}

	return args, validateArgs(args)
}
