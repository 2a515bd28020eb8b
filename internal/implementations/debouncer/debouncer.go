package debouncer

import (
	"context"
	"mealremind/internal/core/domain/clock"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"sync"
	"time"
)

const DEFAULT_DELAY = 100 * time.Millisecond

// Debouncer collapses bursts of reschedule requests into one flush that runs
// delay after the last request.
type Debouncer struct {
	log     logging.Logger
	clock   clock.Clock
	delay   time.Duration
	flush   func(ctx context.Context)
	pending clock.Timer
	count   int
	lock    sync.Mutex
}

func New(log logging.Logger, c clock.Clock, delay time.Duration, flush func(ctx context.Context)) *Debouncer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if c == nil {
		panic(e.NewNilArgumentError("clock"))
	}
	if flush == nil {
		panic(e.NewNilArgumentError("flush"))
	}
	if delay <= 0 {
		delay = DEFAULT_DELAY
	}
	return &Debouncer{log: log, clock: c, delay: delay, flush: flush}
}

func (d *Debouncer) RequestReschedule(ctx context.Context) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.count++
	d.pending = d.clock.AfterFunc(d.delay, d.run)
}

func (d *Debouncer) run() {
	d.lock.Lock()
	collapsed := d.count
	d.count = 0
	d.pending = nil
	d.lock.Unlock()

	ctx := context.Background()
	d.log.Debug(ctx, "Reschedule flushed.", logging.Entry("requests", collapsed))
	d.flush(ctx)
}
