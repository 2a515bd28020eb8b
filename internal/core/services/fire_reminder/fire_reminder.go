package firereminder

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/domain/schedule"
	"mealremind/internal/core/domain/sound"
)

// Firer is the in-page firer: it plays the reminder sound and shows an alert on the open page.
type Firer struct {
	log       logging.Logger
	catalog   *sound.Catalog
	player    sound.Player
	displayer notification.Displayer
}

func New(
	log logging.Logger,
	catalog *sound.Catalog,
	player sound.Player,
	displayer notification.Displayer,
) *Firer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if catalog == nil {
		panic(e.NewNilArgumentError("catalog"))
	}
	if player == nil {
		panic(e.NewNilArgumentError("player"))
	}
	if displayer == nil {
		panic(e.NewNilArgumentError("displayer"))
	}
	return &Firer{log: log, catalog: catalog, player: player, displayer: displayer}
}

// Fire plays sound for main and repeat fires, then displays the alert.
// Advance warnings only display a lighter notification.
func (f *Firer) Fire(ctx context.Context, arm schedule.Arm) error {
	n := notification.ForArm(arm)

	if arm.Kind != schedule.KindAdvanceWarning {
		f.player.Stop(ctx)
		s := f.catalog.Resolve(arm.Reminder.EffectiveSoundID())
		f.player.Play(ctx, s.URL, s.PlayDuration())
		n.Silent = true
		f.log.Info(
			ctx,
			"Reminder sound started.",
			logging.Entry("reminderID", arm.Reminder.ID),
			logging.Entry("soundID", s.ID),
		)
	}

	if err := f.displayer.Display(ctx, n); err != nil {
		logging.Error(ctx, f.log, err, logging.Entry("reminderID", arm.Reminder.ID), logging.Entry("tag", n.Tag))
		return err
	}
	return nil
}
