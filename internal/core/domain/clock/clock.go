package clock

import "time"

type Timer interface {
	// Stop prevents the timer from firing. It returns false if the timer
	// has already fired or been stopped.
	Stop() bool
}

// Clock is the source of time and delayed callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
