package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// step ручной тик без тикера
func (c *Countdown) step() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked()
}

func TestCountdown(t *testing.T) {
	t.Run("600 ticks allow resend and stop at zero", func(t *testing.T) {
		c := New(600, time.Hour, nil)
		c.remaining = 600
		require.False(t, c.CanResend())
		for i := 0; i < 599; i++ {
			require.False(t, c.step())
		}
		require.False(t, c.CanResend())
		require.Equal(t, 1, c.Remaining())
		require.True(t, c.step())
		require.True(t, c.CanResend())
		require.Equal(t, 0, c.Remaining())

		require.True(t, c.step())
		require.Equal(t, 0, c.Remaining())
	})

	t.Run("ticker expires and calls back once", func(t *testing.T) {
		var calls int32
		c := New(3, time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
		c.Start()
		require.True(t, c.Running())
		require.Eventually(t, c.CanResend, time.Second, time.Millisecond)
		require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)
		require.False(t, c.Running())
		time.Sleep(10 * time.Millisecond)
		require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("cancel stops decrementing", func(t *testing.T) {
		c := New(600, time.Millisecond, nil)
		c.Start()
		c.Cancel()
		require.False(t, c.Running())
		left := c.Remaining()
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, left, c.Remaining())
		require.Greater(t, left, 500)
	})

	t.Run("restart resets value", func(t *testing.T) {
		c := New(600, time.Hour, nil)
		c.Start()
		c.step()
		require.Equal(t, 599, c.Remaining())
		c.Start()
		require.Equal(t, 600, c.Remaining())
		c.Cancel()
	})

	t.Run("format", func(t *testing.T) {
		require.Equal(t, "10:00", FormatTime(600))
		require.Equal(t, "0:09", FormatTime(9))
		require.Equal(t, "1:05", FormatTime(65))
		require.Equal(t, "0:00", FormatTime(-3))
	})
}
