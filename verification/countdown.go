package verification

import (
	"sync"
	"time"
)

// Countdown is the cooperative resend timer shown next to an OTP input. It
// ticks once per interval until it reaches zero or is stopped. Issuing a new
// challenge must Stop the old countdown before starting a replacement so a
// stale timer can never re-arm a consumed challenge.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	stop      chan struct{}
	done      bool
}

// NewCountdown starts a countdown of `seconds` ticks at the given interval.
// onTick is called with the remaining count after each tick; it receives 0 on
// the final tick. onTick may be nil.
func NewCountdown(seconds int, interval time.Duration, onTick func(remaining int)) *Countdown {
	c := &Countdown{
		remaining: seconds,
		stop:      make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				if c.done {
					c.mu.Unlock()
					return
				}
				c.remaining--
				remaining := c.remaining
				if remaining <= 0 {
					c.done = true
				}
				c.mu.Unlock()

				if onTick != nil {
					onTick(remaining)
				}
				if remaining <= 0 {
					return
				}
			}
		}
	}()

	return c
}

// Remaining returns the ticks left before resend becomes available.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Expired reports whether the countdown has run out or been stopped.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Stop cancels the countdown. Safe to call more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	close(c.stop)
}
