package timerset

import (
	"mealremind/internal/core/domain/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCancelAllRevokesEveryTimer(t *testing.T) {
	// Setup ---
	fakeClock := clock.NewFakeClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	timers := New(fakeClock)
	fired := 0
	for i := 1; i <= 3; i++ {
		timers.Arm(time.Duration(i)*time.Minute, func() { fired++ })
	}

	// Exercise ---
	cancelled := timers.CancelAll()
	fakeClock.Advance(time.Hour)

	// Verify ---
	assert.Equal(t, 3, cancelled)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 0, timers.Len())
}

func TestRearmFromCallback(t *testing.T) {
	fakeClock := clock.NewFakeClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	timers := New(fakeClock)
	fired := 0
	var arm func()
	arm = func() {
		timers.Arm(time.Hour, func() {
			fired++
			timers.CancelAll()
			arm()
		})
	}
	arm()

	fakeClock.Advance(3 * time.Hour)

	assert.Equal(t, 3, fired)
	assert.Equal(t, 1, timers.Len())
	assert.Equal(t, 1, fakeClock.Pending())
}

func TestSupersededGenerationDoesNotFire(t *testing.T) {
	fakeClock := clock.NewFakeClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	timers := New(fakeClock)
	fired := []string{}

	timers.Arm(time.Minute, func() {
		fired = append(fired, "first")
		// A pass that runs while a sibling timer of the same generation is due.
		timers.CancelAll()
		timers.Arm(time.Hour, func() { fired = append(fired, "next") })
	})
	timers.Arm(time.Minute, func() { fired = append(fired, "sibling") })

	fakeClock.Advance(2 * time.Minute)

	assert.Equal(t, []string{"first"}, fired)
}

func TestLenExcludesFiredTimers(t *testing.T) {
	// Setup ---
	fakeClock := clock.NewFakeClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	timers := New(fakeClock)
	fired := 0
	timers.Arm(time.Minute, func() { fired++ })
	timers.Arm(time.Hour, func() { fired++ })

	// Exercise ---
	fakeClock.Advance(2 * time.Minute)

	// Verify ---
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, timers.Len())
	assert.Equal(t, 1, timers.CancelAll())
	assert.Equal(t, 0, timers.Len())
}
