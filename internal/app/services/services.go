package services

import (
	"context"
	"mealremind/internal/app/deps"
	dl "mealremind/internal/core/domain/logging"
	drl "mealremind/internal/core/domain/rate_limiter"
	"mealremind/internal/core/services"
	activatebackground "mealremind/internal/core/services/activate_background"
	addcustomsound "mealremind/internal/core/services/add_custom_sound"
	"mealremind/internal/core/services/auth"
	controlsound "mealremind/internal/core/services/control_sound"
	createreminder "mealremind/internal/core/services/create_reminder"
	deletereminder "mealremind/internal/core/services/delete_reminder"
	delivernotification "mealremind/internal/core/services/deliver_notification"
	derivereminders "mealremind/internal/core/services/derive_reminders"
	dismissreminder "mealremind/internal/core/services/dismiss_reminder"
	firereminder "mealremind/internal/core/services/fire_reminder"
	initializedefaultreminders "mealremind/internal/core/services/initialize_default_reminders"
	listreminders "mealremind/internal/core/services/list_reminders"
	listsounds "mealremind/internal/core/services/list_sounds"
	precacheassets "mealremind/internal/core/services/precache_assets"
	previewsound "mealremind/internal/core/services/preview_sound"
	purgeassetcaches "mealremind/internal/core/services/purge_asset_caches"
	ratelimiting "mealremind/internal/core/services/rate_limiting"
	reschedulereminders "mealremind/internal/core/services/reschedule_reminders"
	schedulereminders "mealremind/internal/core/services/schedule_reminders"
	serveasset "mealremind/internal/core/services/serve_asset"
	setnotificationpermission "mealremind/internal/core/services/set_notification_permission"
	syncreminders "mealremind/internal/core/services/sync_reminders"
	updatereminder "mealremind/internal/core/services/update_reminder"
	"mealremind/internal/implementations/debouncer"
	timerset "mealremind/internal/implementations/timer_set"
	"time"
)

const (
	REASON_STORE_MUTATION = "store-mutation"
	REASON_SAFETY_PASS    = "safety-pass"
	SAFETY_PASS_TAG       = "reminders-reschedule"
)

// Foreground are the services the page talks to. Every one of them is wrapped
// with authentication when an access token hash is configured.
type Foreground struct {
	ListReminders   services.Service[listreminders.Input, listreminders.Result]
	CreateReminder  services.Service[createreminder.Input, createreminder.Result]
	UpdateReminder  services.Service[updatereminder.Input, updatereminder.Result]
	DeleteReminder  services.Service[deletereminder.Input, deletereminder.Result]
	DismissReminder services.Service[dismissreminder.Input, dismissreminder.Result]
	DeriveReminders services.Service[derivereminders.Input, derivereminders.Result]

	ListSounds     services.Service[listsounds.Input, listsounds.Result]
	AddCustomSound services.Service[addcustomsound.Input, addcustomsound.Result]
	PreviewSound   services.Service[previewsound.Input, previewsound.Result]
	ControlSound   services.Service[controlsound.Input, controlsound.Result]

	RescheduleReminders       services.Service[reschedulereminders.Input, reschedulereminders.Result]
	SetNotificationPermission services.Service[setnotificationpermission.Input, setnotificationpermission.Result]
	ServeAsset                services.Service[serveasset.Input, serveasset.Result]

	// Startup services run without authentication.
	InitializeDefaultReminders services.Service[initializedefaultreminders.Input, initializedefaultreminders.Result]
	Reschedule                 services.Service[reschedulereminders.Input, reschedulereminders.Result]
}

func InitForeground(deps *deps.Foreground) *Foreground {
	s := &Foreground{}
	log := deps.Logger

	var reschedule services.Service[reschedulereminders.Input, reschedulereminders.Result]
	rescheduler := debouncer.New(log, deps.Clock, deps.Config.RescheduleDebounce, func(ctx context.Context) {
		if _, err := reschedule.Run(ctx, reschedulereminders.Input{Reason: REASON_STORE_MUTATION}); err != nil {
			log.Warning(ctx, "Debounced scheduling pass failed.", dl.Entry("err", err))
		}
	})

	listReminders := listreminders.New(log, deps.UnitOfWork)
	pass := schedulereminders.New(
		log,
		listreminders.Source{Service: listReminders},
		timerset.New(deps.Clock),
		firereminder.New(log, deps.SoundCatalog, deps.SoundPlayer, deps.Displayer),
		deps.Now,
	)
	reschedule = reschedulereminders.New(log, pass, listReminders, deps.SyncRequester)
	s.Reschedule = reschedule
	s.InitializeDefaultReminders = initializedefaultreminders.New(
		log,
		deps.UnitOfWork,
		deps.IdentityGenerator,
		rescheduler,
		deps.Now,
	)

	s.ListReminders = withAuth(deps, listReminders)
	s.CreateReminder = withAuth(deps, createreminder.New(
		log,
		deps.UnitOfWork,
		deps.IdentityGenerator,
		rescheduler,
		deps.Now,
	))
	s.UpdateReminder = withAuth(deps, updatereminder.New(log, deps.UnitOfWork, rescheduler))
	s.DeleteReminder = withAuth(deps, deletereminder.New(log, deps.UnitOfWork, rescheduler))
	s.DismissReminder = withAuth(deps, dismissreminder.New(log, deps.UnitOfWork, pass, deps.SoundPlayer, rescheduler))
	s.DeriveReminders = withAuth(deps, derivereminders.New(
		log,
		deps.UnitOfWork,
		deps.IdentityGenerator,
		rescheduler,
		deps.Now,
	))

	s.ListSounds = withAuth(deps, listsounds.New(deps.SoundCatalog))
	s.AddCustomSound = withAuth(deps, ratelimiting.New(
		log,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: deps.Config.CustomSoundRateLimit},
		addcustomsound.New(log, deps.SoundCatalog),
	))
	s.PreviewSound = withAuth(deps, ratelimiting.New(
		log,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: deps.Config.SoundPreviewRateLimit},
		previewsound.New(log, deps.SoundCatalog, deps.SoundPlayer),
	))
	s.ControlSound = withAuth(deps, controlsound.New(log, deps.SoundPlayer))

	s.RescheduleReminders = withAuth(deps, reschedule)
	s.SetNotificationPermission = withAuth(deps, setnotificationpermission.New(log, deps.PermissionGate))
	s.ServeAsset = serveasset.New(log, deps.AssetOrigin, deps.AssetCache, deps.Config.AssetCacheName)

	err := deps.Periodic.Register(SAFETY_PASS_TAG, time.Hour, func(ctx context.Context) {
		_, _ = reschedule.Run(ctx, reschedulereminders.Input{Reason: REASON_SAFETY_PASS})
	})
	if err != nil {
		log.Warning(context.Background(), "Safety pass is not registered.", dl.Entry("err", err))
	}

	return s
}

// Background are the worker's services.
type Background struct {
	Sync     services.Service[syncreminders.Input, syncreminders.Result]
	Activate services.Service[activatebackground.Input, activatebackground.Result]
}

func InitBackground(deps *deps.Background) *Background {
	s := &Background{}
	log := deps.Logger

	deliverer := delivernotification.New(
		log,
		deps.Displayer,
		deps.WakeLock,
		deps.FailedQueue,
		deps.Clock,
		deps.Config.RetryDelay,
	)
	pass := schedulereminders.New(log, deps.DurableStore, timerset.New(deps.Clock), deliverer, deps.Now)

	s.Sync = syncreminders.New(log, deps.DurableStore, pass, deps.FailedQueue, deliverer)
	s.Activate = activatebackground.New(
		log,
		deps.DurableStore,
		deps.Periodic,
		precacheassets.New(log, deps.AssetOrigin, deps.AssetCache, deps.Config.AssetCacheName),
		purgeassetcaches.New(log, deps.AssetCache, deps.Config.AssetCacheName),
		s.Sync,
	)
	return s
}

func withAuth[T any, S any](deps *deps.Foreground, inner services.Service[T, S]) services.Service[T, S] {
	if deps.Config.AuthTokenHash == "" {
		return inner
	}
	return auth.WithAuthentication(deps.TokenHasher, deps.Config.AuthTokenHash, inner)
}
