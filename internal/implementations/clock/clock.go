package clock

import (
	"mealremind/internal/core/domain/clock"
	"time"
)

// Real is the wall clock. Now is expressed in loc.
type Real struct {
	loc *time.Location
}

func NewReal(loc *time.Location) *Real {
	if loc == nil {
		loc = time.Local
	}
	return &Real{loc: loc}
}

func (c *Real) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *Real) AfterFunc(d time.Duration, f func()) clock.Timer {
	return time.AfterFunc(d, f)
}
