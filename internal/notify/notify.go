// Package notify is the transient notification center. Write-path results
// surface here as short-lived messages that auto-clear after a fixed
// display duration or on explicit dismissal.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

type Notification struct {
	ID       int
	Severity Severity
	Message  string
	PostedAt time.Time
}

// Center holds the currently visible notifications. One Center serves the
// whole process; stores push into it and the UI drains it.
type Center struct {
	ttl time.Duration
	log zerolog.Logger

	mu      sync.Mutex
	nextID  int
	active  []Notification
	timers  map[int]*time.Timer
	changed func()
}

func NewCenter(ttl time.Duration, log zerolog.Logger) *Center {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &Center{
		ttl:    ttl,
		log:    log,
		timers: make(map[int]*time.Timer),
	}
}

// OnChange registers a single callback fired after every post or clear.
func (c *Center) OnChange(fn func()) {
	c.mu.Lock()
	c.changed = fn
	c.mu.Unlock()
}

func (c *Center) Success(message string) int { return c.post(SeveritySuccess, message) }
func (c *Center) Error(message string) int   { return c.post(SeverityError, message) }
func (c *Center) Info(message string) int    { return c.post(SeverityInfo, message) }

func (c *Center) post(sev Severity, message string) int {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	n := Notification{ID: id, Severity: sev, Message: message, PostedAt: time.Now()}
	c.active = append(c.active, n)
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	changed := c.changed
	c.mu.Unlock()

	c.log.Debug().Str("severity", string(sev)).Str("message", message).Msg("notification posted")
	if changed != nil {
		changed()
	}
	return id
}

// Dismiss removes a notification before its display duration elapses. It is
// a no-op for an already-cleared id.
func (c *Center) Dismiss(id int) {
	c.mu.Lock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			break
		}
	}
	changed := c.changed
	c.mu.Unlock()

	if changed != nil {
		changed()
	}
}

// Active returns the notifications currently on display.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.active...)
}
