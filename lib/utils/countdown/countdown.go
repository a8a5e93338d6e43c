package countdown

import (
	"fmt"
	"sync"
	"time"
)

// Countdown отменяемая повторяющаяся задача: раз в tick уменьшает счетчик до 0
type Countdown struct {
	mu        sync.Mutex
	total     int
	remaining int
	tick      time.Duration
	stop      chan struct{}
	onExpire  func()
}

func New(seconds int, tick time.Duration, onExpire func()) *Countdown {
	if tick <= 0 {
		tick = time.Second
	}
	return &Countdown{
		total:    seconds,
		tick:     tick,
		onExpire: onExpire,
	}
}

// Start запускает отсчет заново с начального значения
func (c *Countdown) Start() {
	c.mu.Lock()
	c.stopLocked()
	c.remaining = c.total
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()
	go c.run(stop)
}

func (c *Countdown) run(stop chan struct{}) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			expired, active := c.tickFor(stop)
			if !active {
				return
			}
			if expired {
				if c.onExpire != nil {
					c.onExpire()
				}
				return
			}
		}
	}
}

func (c *Countdown) tickFor(stop chan struct{}) (expired, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != stop {
		return false, false
	}
	expired = c.stepLocked()
	if expired {
		c.stop = nil
	}
	return expired, true
}

// stepLocked один тик. true, когда счетчик дошел до 0
func (c *Countdown) stepLocked() bool {
	if c.remaining <= 0 {
		c.remaining = 0
		return true
	}
	c.remaining--
	return c.remaining == 0
}

func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Countdown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// CanResend отсчет дошел до 0
func (c *Countdown) CanResend() bool {
	return c.Remaining() == 0
}

// FormatTime секунды в виде m:ss
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
