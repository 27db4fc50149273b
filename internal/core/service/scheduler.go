package service

import (
	"context"
	"fmt"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"
)

const defaultDeliveryTimeout = 30 * time.Second

// Gauge receives the number of pending reminders whenever it changes.
type Gauge interface {
	Set(float64)
}

type scheduledTask struct {
	task  domain.ReminderTask
	timer Timer
}

// Scheduler runs one-shot reminders, each on its own timer. Tasks are held in memory only and are dropped on
// shutdown.
type Scheduler struct {
	clock           Clock
	deliveryTimeout time.Duration
	gauge           Gauge

	mu      sync.Mutex
	tasks   map[string]*scheduledTask
	stopped bool
	pending *atomic.Int64
}

type SchedulerParams struct {
	Clock           Clock
	DeliveryTimeout time.Duration
	Gauge           Gauge
}

// NewScheduler creates a scheduler that discards all pending tasks once ctx is done.
func NewScheduler(ctx context.Context, p SchedulerParams) *Scheduler {
	if p.Clock == nil {
		p.Clock = RealClock{}
	}

	if p.DeliveryTimeout <= 0 {
		p.DeliveryTimeout = defaultDeliveryTimeout
	}

	s := &Scheduler{
		clock:           p.Clock,
		deliveryTimeout: p.DeliveryTimeout,
		gauge:           p.Gauge,
		tasks:           make(map[string]*scheduledTask),
		pending:         atomic.NewInt64(0),
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return s
}

func (s *Scheduler) Schedule(task domain.ReminderTask, deliver port.DeliverFunc) (string, error) {
	if task.Delay <= 0 {
		return "", fmt.Errorf("%w: delay must be positive", domain.ErrInvalidArguments)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return "", domain.ErrSchedulerStopped
	}

	task.ID = xid.New().String()
	task.CreatedAt = s.clock.Now()
	task.FireAt = task.CreatedAt.Add(task.Delay)

	st := &scheduledTask{task: task}
	s.tasks[task.ID] = st
	// the callback takes s.mu, so it cannot observe the task before the timer is stored
	st.timer = s.clock.AfterFunc(task.Delay, func() { s.fire(task.ID, deliver) })

	s.report(s.pending.Inc())

	log.Debug().
		Str("reminderId", task.ID).
		Int64("chatId", task.ChatID).
		Time("fireAt", task.FireAt).
		Msg("reminder scheduled")

	return task.ID, nil
}

func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tasks[id]
	if !ok {
		return false
	}

	st.timer.Stop()
	delete(s.tasks, id)
	s.report(s.pending.Dec())

	log.Debug().Str("reminderId", id).Msg("reminder cancelled")

	return true
}

func (s *Scheduler) Pending() int {
	return int(s.pending.Load())
}

// Stop discards every pending task. Subsequent calls to Schedule fail with domain.ErrSchedulerStopped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	s.stopped = true
	for id, st := range s.tasks {
		st.timer.Stop()
		delete(s.tasks, id)
	}

	dropped := s.pending.Swap(0)
	s.report(0)

	log.Info().Int64("dropped", dropped).Msg("reminder scheduler stopped")
}

func (s *Scheduler) fire(id string, deliver port.DeliverFunc) {
	s.mu.Lock()
	st, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
		s.report(s.pending.Dec())
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	log.Debug().Str("reminderId", id).Int64("chatId", st.task.ChatID).Msg("delivering reminder")

	ctx, cancel := context.WithTimeout(context.Background(), s.deliveryTimeout)
	defer cancel()

	deliver(ctx, st.task)
}

func (s *Scheduler) report(pending int64) {
	if s.gauge != nil {
		s.gauge.Set(float64(pending))
	}
}
