package service

import (
	"sync"
	"time"
)

type Timer interface {
	Stop() bool
}

// Clock abstracts timer creation so the scheduler can run against virtual time in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a Clock whose time only moves when Advance is called. Due callbacks run synchronously inside
// Advance, ordered by deadline.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTimer{clock: c, deadline: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)

	return t
}

// Advance moves the clock forward by d and runs every callback that became due.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}

		next.fired = true
		c.now = next.deadline
		c.mu.Unlock()

		next.f()
	}
}

func (c *ManualClock) nextDue(target time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range c.timers {
		if t.stopped || t.fired || t.deadline.After(target) {
			continue
		}

		if next == nil || t.deadline.Before(next.deadline) {
			next = t
		}
	}

	return next
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}

	t.stopped = true

	return true
}
