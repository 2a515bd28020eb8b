package listsounds

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/sound"
	"mealremind/internal/core/services"
)

type Input struct{}

type Result struct {
	Sounds []sound.Sound
}

type service struct {
	catalog *sound.Catalog
}

func New(catalog *sound.Catalog) services.Service[Input, Result] {
	if catalog == nil {
		panic(e.NewNilArgumentError("catalog"))
	}
	return &service{catalog: catalog}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result.Sounds = s.catalog.List()
	return result, nil
}
