package notifier

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/notification"
	pageevents "mealremind/internal/implementations/page_events"
)

// InPage shows notifications on the open meal-planner page.
type InPage struct {
	publisher pageevents.Publisher
}

func NewInPage(publisher pageevents.Publisher) *InPage {
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	return &InPage{publisher: publisher}
}

func (d *InPage) Display(ctx context.Context, n notification.Notification) error {
	return d.publisher.Publish(ctx, pageevents.KIND_NOTIFICATION, n)
}
