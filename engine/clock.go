package engine

import "time"

// Clock tracks one side's remaining time. Nothing happens when it runs out.
type Clock struct {
	timeLeft    time.Duration
	lastStarted time.Time
	isRunning   bool
	now         func() time.Time
}

// NewClock returns a stopped clock holding initialTime.
func NewClock(initialTime time.Duration) *Clock {
	return &Clock{
		timeLeft: initialTime,
		now:      time.Now,
	}
}

// Start runs the clock. Starting a running clock does nothing.
func (c *Clock) Start() {
	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

// Stop pauses the clock and books the elapsed time.
func (c *Clock) Stop() {
	if c.isRunning {
		c.timeLeft -= c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

// Running reports whether the clock is started.
func (c *Clock) Running() bool {
	return c.isRunning
}

// TimeLeft returns the remaining time, never below zero.
func (c *Clock) TimeLeft() time.Duration {
	left := c.timeLeft
	if c.isRunning {
		left -= c.now().Sub(c.lastStarted)
	}
	if left < 0 {
		return 0
	}
	return left
}
