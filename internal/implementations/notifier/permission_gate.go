package notifier

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	pageevents "mealremind/internal/implementations/page_events"
	"sync"
)

// PermissionGate holds the notification permission of the page and only lets
// notifications through once it has been granted.
type PermissionGate struct {
	log       logging.Logger
	next      notification.Displayer
	publisher pageevents.Publisher

	mu        sync.Mutex
	current   notification.Permission
	requested bool
}

func NewPermissionGate(
	log logging.Logger,
	next notification.Displayer,
	publisher pageevents.Publisher,
	initial notification.Permission,
) *PermissionGate {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if next == nil {
		panic(e.NewNilArgumentError("next"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if initial == (notification.Permission{}) {
		initial = notification.PermissionDefault
	}
	return &PermissionGate{log: log, next: next, publisher: publisher, current: initial}
}

func (g *PermissionGate) Permission(ctx context.Context) notification.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

func (g *PermissionGate) SetPermission(ctx context.Context, p notification.Permission) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current != p {
		g.requested = false
	}
	g.current = p
	g.log.Info(ctx, "Notification permission changed.", logging.Entry("permission", p))
}

// RequestPermission asks the page for permission. Only the first call per permission state does anything.
func (g *PermissionGate) RequestPermission(ctx context.Context) {
	g.mu.Lock()
	if g.current != notification.PermissionDefault || g.requested {
		g.mu.Unlock()
		return
	}
	g.requested = true
	g.mu.Unlock()

	err := g.publisher.Publish(ctx, pageevents.KIND_PERMISSION_REQUEST, struct{}{})
	if err != nil {
		g.log.Warning(ctx, "Could not request notification permission.", logging.Entry("err", err))
		g.mu.Lock()
		g.requested = false
		g.mu.Unlock()
	}
}

func (g *PermissionGate) Display(ctx context.Context, n notification.Notification) error {
	switch g.Permission(ctx) {
	case notification.PermissionGranted:
		return g.next.Display(ctx, n)
	case notification.PermissionDefault:
		g.RequestPermission(ctx)
		g.log.Debug(ctx, "Notification skipped, permission not granted yet.", logging.Entry("tag", n.Tag))
		return nil
	default:
		return nil
	}
}
