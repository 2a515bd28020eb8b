package sound

import (
	"context"
	"time"
)

const DEFAULT_DURATION = 30 * time.Second

type Sound struct {
	ID       string
	Name     string
	URL      string
	Duration time.Duration
}

// PlayDuration returns the configured duration, or the default one when unset.
func (s Sound) PlayDuration() time.Duration {
	if s.Duration <= 0 {
		return DEFAULT_DURATION
	}
	return s.Duration
}

type Status struct {
	IsPlaying        bool
	RemainingSeconds int
}

// Player owns at most one playback session at a time.
type Player interface {
	Play(ctx context.Context, url string, duration time.Duration)
	Stop(ctx context.Context)
	Status() Status
}

// Playback is a started audio resource.
type Playback interface {
	// Stop halts the resource and resets its position.
	Stop(ctx context.Context) error
}

// Backend starts audio resources on whatever device actually produces sound.
type Backend interface {
	Start(ctx context.Context, url string, loop bool) (Playback, error)
}

type IDGenerator interface {
	GenerateCustomSoundID() string
}
