package pageevents

import (
	"context"
	"encoding/json"
	e "mealremind/internal/core/domain/errors"

	"github.com/r3labs/sse/v2"
)

const STREAM_ID = "page"

const (
	KIND_NOTIFICATION       = "notification"
	KIND_PERMISSION_REQUEST = "notification.permission_request"
	KIND_SOUND_PLAY         = "sound.play"
	KIND_SOUND_STOP         = "sound.stop"
)

// Publisher sends events to the open meal-planner page.
type Publisher interface {
	Publish(ctx context.Context, kind string, payload any) error
}

type SSE struct {
	server *sse.Server
}

func NewSSE(server *sse.Server) *SSE {
	if server == nil {
		panic(e.NewNilArgumentError("server"))
	}
	if !server.StreamExists(STREAM_ID) {
		server.CreateStream(STREAM_ID)
	}
	return &SSE{server: server}
}

func (p *SSE) Publish(ctx context.Context, kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	p.server.Publish(STREAM_ID, &sse.Event{Event: []byte(kind), Data: data})
	return nil
}
