package notifier

import (
	"context"
	"errors"
	"fmt"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
)

type Channel struct {
	Name      string
	Displayer notification.Displayer
}

// Composite shows a notification on every channel.
// It fails only if no channel managed to show it.
type Composite struct {
	log      logging.Logger
	channels []Channel
}

func NewComposite(log logging.Logger, channels ...Channel) *Composite {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if len(channels) == 0 {
		panic(e.NewInvalidArgumentError("channels", "at least one channel is required"))
	}
	for _, ch := range channels {
		if ch.Displayer == nil {
			panic(e.NewNilArgumentError(fmt.Sprintf("channels[%s]", ch.Name)))
		}
	}
	return &Composite{log: log, channels: channels}
}

func (c *Composite) Display(ctx context.Context, n notification.Notification) error {
	errs := make([]error, 0, len(c.channels))
	for _, ch := range c.channels {
		err := ch.Displayer.Display(ctx, n)
		if err == nil {
			continue
		}
		c.log.Warning(
			ctx,
			"Notification channel failed.",
			logging.Entry("channel", ch.Name),
			logging.Entry("tag", n.Tag),
			logging.Entry("err", err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", ch.Name, err))
	}
	if len(errs) == len(c.channels) {
		return errors.Join(append([]error{notification.ErrDisplayFailed}, errs...)...)
	}
	return nil
}
