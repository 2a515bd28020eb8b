package activatebackground

import (
	"context"
	"mealremind/internal/core/domain/durable"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/schedule"
	"mealremind/internal/core/services"
	precacheassets "mealremind/internal/core/services/precache_assets"
	purgeassetcaches "mealremind/internal/core/services/purge_asset_caches"
	syncreminders "mealremind/internal/core/services/sync_reminders"
	"time"
)

const (
	PERIODIC_TAG      = "reminders-sync"
	PERIODIC_INTERVAL = time.Hour
)

type Input struct {
	// PeriodicEnabled reflects whether periodic wake-ups were granted.
	PeriodicEnabled bool
}

type Result struct {
	SchemaFrom       int
	SchemaTo         int
	PeriodicArmed    bool
	Precached        int
	DroppedCaches    int
	ArmedAfterSync   int
	StillFailedAfter int
}

type service struct {
	log      logging.Logger
	store    durable.Store
	periodic schedule.PeriodicWake
	precache services.Service[precacheassets.Input, precacheassets.Result]
	purge    services.Service[purgeassetcaches.Input, purgeassetcaches.Result]
	sync     services.Service[syncreminders.Input, syncreminders.Result]
}

func New(
	log logging.Logger,
	store durable.Store,
	periodic schedule.PeriodicWake,
	precache services.Service[precacheassets.Input, precacheassets.Result],
	purge services.Service[purgeassetcaches.Input, purgeassetcaches.Result],
	sync services.Service[syncreminders.Input, syncreminders.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if periodic == nil {
		panic(e.NewNilArgumentError("periodic"))
	}
	if precache == nil {
		panic(e.NewNilArgumentError("precache"))
	}
	if purge == nil {
		panic(e.NewNilArgumentError("purge"))
	}
	if sync == nil {
		panic(e.NewNilArgumentError("sync"))
	}
	return &service{log: log, store: store, periodic: periodic, precache: precache, purge: purge, sync: sync}
}

// Run brings the background context up: schema upgrade, periodic wake,
// asset cache lifecycle and a first sync pass. Only the schema upgrade is fatal.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result.SchemaFrom, result.SchemaTo, err = s.store.Migrate(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	if input.PeriodicEnabled {
		err := s.periodic.Register(PERIODIC_TAG, PERIODIC_INTERVAL, func(ctx context.Context) {
			_, _ = s.sync.Run(ctx, syncreminders.Input{Reason: "periodic"})
		})
		if err != nil {
			s.log.Warning(ctx, "Periodic sync is not registered, on-demand only.", logging.Entry("err", err))
		} else {
			result.PeriodicArmed = true
		}
	} else {
		s.log.Info(ctx, "Periodic sync is not granted, on-demand only.")
	}

	if precached, err := s.precache.Run(ctx, precacheassets.Input{}); err == nil {
		result.Precached = len(precached.Cached)
	}
	if purged, err := s.purge.Run(ctx, purgeassetcaches.Input{}); err == nil {
		result.DroppedCaches = len(purged.Dropped)
	}

	synced, err := s.sync.Run(ctx, syncreminders.Input{Reason: "activation"})
	result.ArmedAfterSync = synced.Armed
	result.StillFailedAfter = synced.StillFailed
	if err != nil {
		return result, err
	}

	s.log.Info(
		ctx,
		"Background context activated.",
		logging.Entry("schemaFrom", result.SchemaFrom),
		logging.Entry("schemaTo", result.SchemaTo),
		logging.Entry("periodic", result.PeriodicArmed),
		logging.Entry("armed", result.ArmedAfterSync),
	)
	return result, nil
}
