package previewsound

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/sound"
	"mealremind/internal/core/services"
	"time"
)

const PREVIEW_DURATION = 5 * time.Second

type Input struct {
	SoundID string
}

func (i Input) GetRateLimitKey() string {
	return "preview-sound"
}

type Result struct {
	Sound sound.Sound
}

type service struct {
	log     logging.Logger
	catalog *sound.Catalog
	player  sound.Player
}

func New(log logging.Logger, catalog *sound.Catalog, player sound.Player) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if catalog == nil {
		panic(e.NewNilArgumentError("catalog"))
	}
	if player == nil {
		panic(e.NewNilArgumentError("player"))
	}
	return &service{log: log, catalog: catalog, player: player}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	s.player.Stop(ctx)
	result.Sound = s.catalog.Resolve(input.SoundID)
	s.player.Play(ctx, result.Sound.URL, PREVIEW_DURATION)
	s.log.Debug(ctx, "Sound preview started.", logging.Entry("soundID", result.Sound.ID))
	return result, nil
}
