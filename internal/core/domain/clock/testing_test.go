package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeClockFiresInOrder(t *testing.T) {
	assert := require.New(t)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)
	fired := make([]string, 0)

	c.AfterFunc(2*time.Minute, func() { fired = append(fired, "second") })
	c.AfterFunc(time.Minute, func() {
		fired = append(fired, "first")
		c.AfterFunc(30*time.Second, func() { fired = append(fired, "nested") })
	})
	stopped := c.AfterFunc(90*time.Second, func() { fired = append(fired, "stopped") })
	assert.True(stopped.Stop())
	assert.False(stopped.Stop())

	c.Advance(5 * time.Minute)

	assert.Equal([]string{"first", "nested", "second"}, fired)
	assert.Equal(start.Add(5*time.Minute), c.Now())
	assert.Equal(0, c.Pending())
}
