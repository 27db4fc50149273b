package port

import (
	"context"
	"ryzexbot/internal/core/domain"
)

// DeliverFunc is invoked once a reminder is due.
type DeliverFunc func(ctx context.Context, task domain.ReminderTask)

type ReminderScheduler interface {
	// Schedule registers the task and returns without waiting for it to become due.
	Schedule(task domain.ReminderTask, deliver DeliverFunc) (string, error)
	// Cancel stops a pending task. It reports false if the task already fired or is unknown.
	Cancel(id string) bool
	Pending() int
}
