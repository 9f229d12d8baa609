package model

import (
	"sync"
	"time"
)

// Clock accumulates the time one side has spent thinking.
type Clock struct {
	mu          sync.Mutex
	used        time.Duration
	lastStarted time.Time
	isRunning   bool
	now         func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.used += c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

func (c *Clock) Used() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.used + c.now().Sub(c.lastStarted)
	}
	return c.used
}

// Clocks pairs one Clock per colour and runs only the side to move.
type Clocks struct {
	White *Clock
	Black *Clock
}

func NewClocks() *Clocks {
	return &Clocks{White: NewClock(), Black: NewClock()}
}

func (c *Clocks) For(color Color) *Clock {
	if color == White {
		return c.White
	}
	return c.Black
}

// Switch stops the clock of the side that just moved and starts toMove's.
func (c *Clocks) Switch(toMove Color) {
	c.For(toMove.Opposite()).Stop()
	c.For(toMove).Start()
}

func (c *Clocks) StopAll() {
	c.White.Stop()
	c.Black.Stop()
}

type ClientClock struct {
	UsedMillis int64 `json:"usedMillis"`
}

func (c *Clocks) Client() map[Color]ClientClock {
	return map[Color]ClientClock{
		White: {UsedMillis: c.White.Used().Milliseconds()},
		Black: {UsedMillis: c.Black.Used().Milliseconds()},
	}
}
