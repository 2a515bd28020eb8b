package notifier

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
)

// Disabled stands in when no out-of-page channel is configured. Like a denied
// permission, it skips every notification without failing the delivery.
type Disabled struct {
	log logging.Logger
}

func NewDisabled(log logging.Logger) *Disabled {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Disabled{log: log}
}

func (d *Disabled) Display(ctx context.Context, n notification.Notification) error {
	d.log.Debug(ctx, "Notification skipped, no channel is configured.", logging.Entry("tag", n.Tag))
	return nil
}
