package command

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// promptArgs covers every command taking a single free-text argument.
type promptArgs struct {
	Text string `validate:"required"`
}

type remindArgs struct {
	Minutes int    `validate:"gt=0,lte=525600"`
	Message string `validate:"required"`
}

func validateArgs(args any) error {
	if err := validate.Struct(args); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArguments, err)
	}

	return nil
}

// reply sends text and only reports failures to send.
func reply(ctx context.Context, sender port.TextSender, message *domain.Message, text string) error {
	if _, err := sender.SendMessageReply(ctx, message, text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// replyFailure sends a fixed failure text to the user and returns the cause for logging.
func replyFailure(ctx context.Context, sender port.TextSender, message *domain.Message, text string,
	cause error) error {
	if err := reply(ctx, sender, message, text); err != nil {
		return fmt.Errorf("%w (after: %w)", err, cause)
	}

	return cause
}
