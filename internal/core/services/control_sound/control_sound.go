package controlsound

import (
	"context"
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/sound"
	"mealremind/internal/core/services"
)

var ErrUnknownAction = errors.New("unknown sound action")

type Action struct {
	v string
}

var (
	ActionStatus = Action{v: "status"}
	ActionStop   = Action{v: "stop"}
)

type Input struct {
	Action Action
}

type Result struct {
	Status sound.Status
}

type service struct {
	log    logging.Logger
	player sound.Player
}

// New builds the service behind the page's sound controls: it reports the playback
// countdown or stops the playback, returning the status afterwards.
func New(log logging.Logger, player sound.Player) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if player == nil {
		panic(e.NewNilArgumentError("player"))
	}
	return &service{log: log, player: player}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	switch input.Action {
	case ActionStatus:
	case ActionStop:
		s.player.Stop(ctx)
		s.log.Debug(ctx, "Sound stopped by user.")
	default:
		return result, ErrUnknownAction
	}
	result.Status = s.player.Status()
	return result, nil
}
