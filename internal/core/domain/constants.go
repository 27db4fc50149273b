package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyPrompt        = errors.New("empty prompt")
	ErrInvalidArguments   = errors.New("invalid arguments")
	// ErrProviderFailed is the single error kind for any failed third-party call.
	ErrProviderFailed   = errors.New("provider request failed")
	ErrCityNotFound     = errors.New("city not found")
	ErrSchedulerStopped = errors.New("scheduler stopped")
)
