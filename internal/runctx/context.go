// Package runctx holds the state of the active analysis session. The slog
// context handler and the status monitor read it concurrently with the
// commands that update it.
package runctx

import (
	"sync"
	"time"
)

// Context holds the active run tag and session timing.
type Context struct {
	mu           sync.RWMutex
	tag          string
	aircraftName string
	sessionStart time.Time
}

// NewContext creates a new Context for a session starting now.
func NewContext(sessionStart time.Time) *Context {
	return &Context{
		tag:          "untagged",
		aircraftName: "none",
		sessionStart: sessionStart,
	}
}

// Tag returns the active run tag.
func (c *Context) Tag() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tag
}

// AircraftName returns the aircraft under analysis.
func (c *Context) AircraftName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aircraftName
}

// SessionStart returns when the session began.
func (c *Context) SessionStart() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionStart
}

// SetRun sets the active run tag and aircraft.
func (c *Context) SetRun(tag, aircraftName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tag = tag
	c.aircraftName = aircraftName
}
