package serveasset

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/asset"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/services"
)

type Input struct {
	Path string
}

type Result struct {
	Response  asset.Response
	FromCache bool
}

type service struct {
	log        logging.Logger
	origin     asset.Origin
	cache      asset.Cache
	generation string
}

func New(log logging.Logger, origin asset.Origin, cache asset.Cache, generation string) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if origin == nil {
		panic(e.NewNilArgumentError("origin"))
	}
	if cache == nil {
		panic(e.NewNilArgumentError("cache"))
	}
	if generation == "" {
		panic(e.NewInvalidArgumentError("generation", "must not be empty"))
	}
	return &service{log: log, origin: origin, cache: cache, generation: generation}
}

// Run is network-first: a successful origin response is cached and returned,
// anything else falls back to the current cache generation.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	response, originErr := s.origin.Fetch(ctx, input.Path)
	if originErr == nil && response.OK() {
		if err := s.cache.Put(ctx, s.generation, input.Path, response); err != nil {
			s.log.Warning(ctx, "Asset could not be cached.", logging.Entry("path", input.Path), logging.Entry("err", err))
		}
		result.Response = response
		return result, nil
	}

	cached, err := s.cache.Get(ctx, s.generation, input.Path)
	if err == nil {
		result.Response = cached
		result.FromCache = true
		return result, nil
	}
	if !errors.Is(err, asset.ErrAssetNotCached) {
		logging.Error(ctx, s.log, err, logging.Entry("path", input.Path))
	}

	if originErr != nil {
		return result, errors.Join(asset.ErrOriginFailed, originErr)
	}
	result.Response = response
	return result, nil
}
