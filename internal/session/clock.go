package session

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock drives the one-second local-time tick shown in the view. It is
// explicitly started and stopped with the view's active lifetime rather
// than running globally.
type Clock struct {
	clock  clockwork.Clock
	onTick func(time.Time)
	stop   chan struct{}
	done   chan struct{}
}

// NewClock creates a clock that calls onTick once per second after Start.
func NewClock(c clockwork.Clock, onTick func(time.Time)) *Clock {
	return &Clock{
		clock:  c,
		onTick: onTick,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the ticking goroutine.
func (c *Clock) Start() {
	ticker := c.clock.NewTicker(time.Second)
	go func() {
		defer close(c.done)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case t := <-ticker.Chan():
				c.onTick(t)
			}
		}
	}()
}

// Stop ends the ticking goroutine and waits for it to exit. Stop must be
// called at most once, after Start.
func (c *Clock) Stop() {
	close(c.stop)
	<-c.done
}
