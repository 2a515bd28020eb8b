package delivernotification

import (
	"context"
	"mealremind/internal/core/domain/clock"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/domain/schedule"
	"time"
)

const RETRY_DELAY = 5 * time.Second

// Deliverer is the background firer. A failed delivery is retried once after
// RETRY_DELAY; a second failure lands in the failed queue.
type Deliverer struct {
	log        logging.Logger
	displayer  notification.Displayer
	wakeLock   notification.WakeLock
	failed     notification.FailedQueue
	clock      clock.Clock
	retryDelay time.Duration
}

func New(
	log logging.Logger,
	displayer notification.Displayer,
	wakeLock notification.WakeLock,
	failed notification.FailedQueue,
	clock clock.Clock,
	retryDelay time.Duration,
) *Deliverer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if displayer == nil {
		panic(e.NewNilArgumentError("displayer"))
	}
	if wakeLock == nil {
		panic(e.NewNilArgumentError("wakeLock"))
	}
	if failed == nil {
		panic(e.NewNilArgumentError("failed"))
	}
	if clock == nil {
		panic(e.NewNilArgumentError("clock"))
	}
	if retryDelay <= 0 {
		retryDelay = RETRY_DELAY
	}
	return &Deliverer{
		log:        log,
		displayer:  displayer,
		wakeLock:   wakeLock,
		failed:     failed,
		clock:      clock,
		retryDelay: retryDelay,
	}
}

// Fire never blocks on the retry delay; the second attempt runs on a clock timer.
func (d *Deliverer) Fire(ctx context.Context, arm schedule.Arm) error {
	release := d.acquire(ctx, arm)

	err := d.Deliver(ctx, arm)
	if err == nil {
		release(ctx)
		return nil
	}

	d.log.Warning(
		ctx,
		"Notification delivery failed, will retry.",
		logging.Entry("reminderID", arm.Reminder.ID),
		logging.Entry("kind", arm.Kind.String()),
		logging.Entry("err", err),
		logging.Entry("retryIn", d.retryDelay),
	)
	d.clock.AfterFunc(d.retryDelay, func() {
		retryCtx := context.Background()
		defer release(retryCtx)
		d.retry(retryCtx, arm)
	})
	return nil
}

// Deliver makes a single display attempt.
func (d *Deliverer) Deliver(ctx context.Context, arm schedule.Arm) error {
	return d.displayer.Display(ctx, notification.ForArm(arm))
}

func (d *Deliverer) retry(ctx context.Context, arm schedule.Arm) {
	err := d.Deliver(ctx, arm)
	if err == nil {
		d.log.Info(ctx, "Notification delivered on retry.", logging.Entry("reminderID", arm.Reminder.ID))
		return
	}

	id, pushErr := d.failed.Push(ctx, notification.Failed{
		Reminder:   arm.Reminder,
		Kind:       arm.Kind,
		Occurrence: arm.Occurrence,
		Attempt:    arm.Attempt,
		At:         d.clock.Now(),
		Error:      err.Error(),
	})
	if pushErr != nil {
		logging.Error(ctx, d.log, pushErr, logging.Entry("reminderID", arm.Reminder.ID), logging.Entry("deliveryErr", err))
		return
	}
	d.log.Warning(
		ctx,
		"Notification delivery failed twice, stored for the next sync.",
		logging.Entry("reminderID", arm.Reminder.ID),
		logging.Entry("failedID", id),
		logging.Entry("err", err),
	)
}

func (d *Deliverer) acquire(ctx context.Context, arm schedule.Arm) func(context.Context) {
	release, err := d.wakeLock.Acquire(ctx, string(arm.Reminder.ID))
	if err != nil {
		d.log.Warning(
			ctx,
			"Wake lock is not available, delivering without it.",
			logging.Entry("reminderID", arm.Reminder.ID),
			logging.Entry("err", err),
		)
		return func(context.Context) {}
	}
	return release
}
