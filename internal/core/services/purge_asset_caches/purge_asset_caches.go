package purgeassetcaches

import (
	"context"
	"mealremind/internal/core/domain/asset"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/services"
)

type Input struct{}

type Result struct {
	Dropped []string
}

type service struct {
	log        logging.Logger
	cache      asset.Cache
	generation string
}

func New(log logging.Logger, cache asset.Cache, generation string) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cache == nil {
		panic(e.NewNilArgumentError("cache"))
	}
	if generation == "" {
		panic(e.NewInvalidArgumentError("generation", "must not be empty"))
	}
	return &service{log: log, cache: cache, generation: generation}
}

// Run drops every cache generation except the current one.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	generations, err := s.cache.Generations(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	for _, generation := range generations {
		if generation == s.generation {
			continue
		}
		if err := s.cache.Drop(ctx, generation); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("generation", generation))
			return result, err
		}
		result.Dropped = append(result.Dropped, generation)
	}
	if len(result.Dropped) > 0 {
		s.log.Info(ctx, "Stale asset caches dropped.", logging.Entry("dropped", result.Dropped))
	}
	return result, nil
}
