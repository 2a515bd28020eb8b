package precacheassets

import (
	"context"
	"fmt"
	"mealremind/internal/core/domain/asset"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/services"
)

type Input struct {
	Paths []string
}

type Result struct {
	Cached []string
	Failed []string
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

// Run stores every path of the manifest in the current generation. Paths that
// cannot be fetched are reported and skipped.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	paths := input.Paths
	if len(paths) == 0 {
		paths = asset.Manifest
	}

	for _, path := range paths {
		if err := s.precache(ctx, path); err != nil {
			s.log.Warning(ctx, "Asset is not precached.", logging.Entry("path", path), logging.Entry("err", err))
			result.Failed = append(result.Failed, path)
			continue
		}
		result.Cached = append(result.Cached, path)
	}

	s.log.Info(
		ctx,
		"Assets precached.",
		logging.Entry("generation", s.generation),
		logging.Entry("cached", len(result.Cached)),
		logging.Entry("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *service) precache(ctx context.Context, path string) error {
	response, err := s.origin.Fetch(ctx, path)
	if err != nil {
		return err
	}
	if !response.OK() {
		return fmt.Errorf("%w: status %d", asset.ErrOriginFailed, response.Status)
	}
	return s.cache.Put(ctx, s.generation, path, response)
}
