package addcustomsound

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/sound"
	"mealremind/internal/core/services"
)

type Input struct {
	Name string
	URL  string
}

func (i Input) GetRateLimitKey() string {
	return "add-custom-sound"
}

type Result struct {
	Sound sound.Sound
}

type service struct {
	log     logging.Logger
	catalog *sound.Catalog
}

func New(log logging.Logger, catalog *sound.Catalog) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if catalog == nil {
		panic(e.NewNilArgumentError("catalog"))
	}
	return &service{log: log, catalog: catalog}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	added, err := s.catalog.AddCustom(input.Name, input.URL)
	if err != nil {
		return result, err
	}
	s.log.Info(ctx, "Custom sound added.", logging.Entry("soundID", added.ID), logging.Entry("url", added.URL))
	result.Sound = added
	return result, nil
}
