package soundplayer

import (
	"context"
	"math"
	"mealremind/internal/core/domain/clock"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/sound"
	"sync"
	"time"
)

type session struct {
	id        uint64
	url       string
	playback  sound.Playback
	duration  time.Duration
	startedAt time.Time
	autoStop  clock.Timer
}

// Player keeps at most one playback session. Starting a new one always stops the previous.
type Player struct {
	log     logging.Logger
	backend sound.Backend
	clock   clock.Clock
	active  *session
	nextID  uint64
	lock    sync.Mutex
}

func New(log logging.Logger, backend sound.Backend, c clock.Clock) *Player {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if backend == nil {
		panic(e.NewNilArgumentError("backend"))
	}
	if c == nil {
		panic(e.NewNilArgumentError("clock"))
	}
	return &Player{log: log, backend: backend, clock: c}
}

func (p *Player) Play(ctx context.Context, url string, duration time.Duration) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.stopLocked(ctx)

	playback, err := p.backend.Start(ctx, url, true)
	if err != nil {
		p.log.Warning(ctx, "Sound could not be started.", logging.Entry("url", url), logging.Entry("err", err))
		return
	}

	p.nextID++
	s := &session{
		id:        p.nextID,
		url:       url,
		playback:  playback,
		duration:  duration,
		startedAt: p.clock.Now(),
	}
	s.autoStop = p.clock.AfterFunc(duration, func() { p.expire(s.id) })
	p.active = s
}

func (p *Player) Stop(ctx context.Context) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.stopLocked(ctx)
}

func (p *Player) Status() sound.Status {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.active == nil {
		return sound.Status{}
	}
	remaining := p.active.duration - p.clock.Now().Sub(p.active.startedAt)
	if remaining <= 0 {
		return sound.Status{}
	}
	return sound.Status{
		IsPlaying:        true,
		RemainingSeconds: int(math.Ceil(remaining.Seconds())),
	}
}

func (p *Player) expire(id uint64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.active == nil || p.active.id != id {
		return
	}
	p.stopLocked(context.Background())
}

func (p *Player) stopLocked(ctx context.Context) {
	if p.active == nil {
		return
	}
	p.active.autoStop.Stop()
	if err := p.active.playback.Stop(ctx); err != nil {
		p.log.Warning(ctx, "Sound could not be stopped.", logging.Entry("url", p.active.url), logging.Entry("err", err))
	}
	p.active = nil
}
