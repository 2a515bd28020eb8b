package soundplayer

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/sound"
	pageevents "mealremind/internal/implementations/page_events"

	"github.com/google/uuid"
)

type playCommand struct {
	PlaybackID string `json:"playbackId"`
	URL        string `json:"url"`
	Loop       bool   `json:"loop"`
}

type stopCommand struct {
	PlaybackID string `json:"playbackId"`
}

// SSEBackend asks the open page to produce the sound.
type SSEBackend struct {
	publisher pageevents.Publisher
}

func NewSSEBackend(publisher pageevents.Publisher) *SSEBackend {
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	return &SSEBackend{publisher: publisher}
}

func (b *SSEBackend) Start(ctx context.Context, url string, loop bool) (sound.Playback, error) {
	id := uuid.NewString()
	err := b.publisher.Publish(ctx, pageevents.KIND_SOUND_PLAY, playCommand{PlaybackID: id, URL: url, Loop: loop})
	if err != nil {
		return nil, err
	}
	return &ssePlayback{id: id, publisher: b.publisher}, nil
}

type ssePlayback struct {
	id        string
	publisher pageevents.Publisher
}

func (p *ssePlayback) Stop(ctx context.Context) error {
	return p.publisher.Publish(ctx, pageevents.KIND_SOUND_STOP, stopCommand{PlaybackID: p.id})
}
