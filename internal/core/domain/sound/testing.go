package sound

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type FakePlay struct {
	URL      string
	Duration time.Duration
}

type FakePlayer struct {
	Played        []FakePlay
	Stopped       int
	CurrentStatus Status
	calls         []string
	lock          sync.Mutex
}

func NewFakePlayer() *FakePlayer {
	return &FakePlayer{}
}

func (p *FakePlayer) Play(ctx context.Context, url string, duration time.Duration) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Played = append(p.Played, FakePlay{URL: url, Duration: duration})
	p.calls = append(p.calls, "play")
}

func (p *FakePlayer) Stop(ctx context.Context) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Stopped++
	p.calls = append(p.calls, "stop")
}

func (p *FakePlayer) Status() Status {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.CurrentStatus
}

// Calls returns the sequence of "play" and "stop" calls.
func (p *FakePlayer) Calls() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	result := make([]string, len(p.calls))
	copy(result, p.calls)
	return result
}

type FakePlayback struct {
	URL     string
	Loop    bool
	Stopped int
	backend *FakeBackend
}

func (p *FakePlayback) Stop(ctx context.Context) error {
	p.backend.lock.Lock()
	defer p.backend.lock.Unlock()
	p.Stopped++
	return nil
}

type FakeBackend struct {
	StartError error
	Started    []*FakePlayback
	lock       sync.Mutex
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

func (b *FakeBackend) Start(ctx context.Context, url string, loop bool) (Playback, error) {
	if b.StartError != nil {
		return nil, b.StartError
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	playback := &FakePlayback{URL: url, Loop: loop, backend: b}
	b.Started = append(b.Started, playback)
	return playback, nil
}

// Active returns playbacks that were started and never stopped.
func (b *FakeBackend) Active() []*FakePlayback {
	b.lock.Lock()
	defer b.lock.Unlock()
	result := make([]*FakePlayback, 0)
	for _, p := range b.Started {
		if p.Stopped == 0 {
			result = append(result, p)
		}
	}
	return result
}

type FakeIDGenerator struct {
	next int
	lock sync.Mutex
}

func (g *FakeIDGenerator) GenerateCustomSoundID() string {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.next++
	return fmt.Sprintf("%d", g.next)
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}
