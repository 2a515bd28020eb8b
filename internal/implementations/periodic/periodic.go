package periodic

import (
	"context"
	"fmt"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const MIN_INTERVAL = time.Hour

// Cron wakes registered callbacks on a fixed interval. Each tag holds at most one entry.
type Cron struct {
	log     logging.Logger
	cron    *cron.Cron
	lock    sync.Mutex
	entries map[string]cron.EntryID
}

func New(log logging.Logger, loc *time.Location) *Cron {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if loc == nil {
		panic(e.NewNilArgumentError("loc"))
	}
	return &Cron{
		log:     log,
		cron:    cron.New(cron.WithLocation(loc)),
		entries: make(map[string]cron.EntryID),
	}
}

// Register arms f every interval under tag, replacing an earlier registration with the same tag.
// Intervals below MIN_INTERVAL are raised to it.
func (c *Cron) Register(tag string, every time.Duration, f func(ctx context.Context)) error {
	if tag == "" {
		return fmt.Errorf("periodic tag must not be empty")
	}
	if every < MIN_INTERVAL {
		every = MIN_INTERVAL
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if id, ok := c.entries[tag]; ok {
		c.cron.Remove(id)
		delete(c.entries, tag)
	}
	id, err := c.cron.AddFunc(fmt.Sprintf("@every %s", every), func() {
		ctx := context.Background()
		c.log.Debug(ctx, "Periodic wake.", logging.Entry("tag", tag))
		f(ctx)
	})
	if err != nil {
		return err
	}
	c.entries[tag] = id
	c.log.Info(
		context.Background(),
		"Periodic wake registered.",
		logging.Entry("tag", tag),
		logging.Entry("every", every.String()),
	)
	return nil
}

func (c *Cron) Unregister(tag string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if id, ok := c.entries[tag]; ok {
		c.cron.Remove(id)
		delete(c.entries, tag)
	}
}

func (c *Cron) Start() {
	c.cron.Start()
}

// Stop waits for running callbacks to finish.
func (c *Cron) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}
