package app

import (
	"fmt"
	"mealremind/internal/app/deps"
	"mealremind/internal/app/services"
	controlsoundservice "mealremind/internal/core/services/control_sound"
	"mealremind/internal/http/handlers/assets"
	"mealremind/internal/http/handlers/auth"
	"mealremind/internal/http/handlers/events"
	mealplan "mealremind/internal/http/handlers/meal_plan"
	"mealremind/internal/http/handlers/notifications"
	createreminder "mealremind/internal/http/handlers/reminders/create_reminder"
	deletereminder "mealremind/internal/http/handlers/reminders/delete_reminder"
	dismissreminder "mealremind/internal/http/handlers/reminders/dismiss_reminder"
	listreminders "mealremind/internal/http/handlers/reminders/list_reminders"
	updatereminder "mealremind/internal/http/handlers/reminders/update_reminder"
	"mealremind/internal/http/handlers/scheduler"
	addcustomsound "mealremind/internal/http/handlers/sounds/add_custom_sound"
	controlsound "mealremind/internal/http/handlers/sounds/control_sound"
	listsounds "mealremind/internal/http/handlers/sounds/list_sounds"
	previewsound "mealremind/internal/http/handlers/sounds/preview_sound"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Foreground, s *services.Foreground) *http.Server {
	reminderRouter := chi.NewRouter()
	reminderRouter.Use(auth.SetAuthTokenToContext)
	reminderRouter.Method(http.MethodGet, "/", listreminders.New(s.ListReminders))
	reminderRouter.Method(http.MethodPost, "/", createreminder.New(s.CreateReminder))
	reminderRouter.Method(http.MethodPut, "/{reminderID}", updatereminder.New(s.UpdateReminder))
	reminderRouter.Method(http.MethodDelete, "/{reminderID}", deletereminder.New(s.DeleteReminder))
	reminderRouter.Method(http.MethodPost, "/{reminderID}/dismiss", dismissreminder.New(s.DismissReminder))

	soundRouter := chi.NewRouter()
	soundRouter.Use(auth.SetAuthTokenToContext)
	soundRouter.Method(http.MethodGet, "/", listsounds.New(s.ListSounds))
	soundRouter.Method(http.MethodPost, "/custom", addcustomsound.New(s.AddCustomSound))
	soundRouter.Method(http.MethodPost, "/{soundID}/preview", previewsound.New(s.PreviewSound))
	soundRouter.Method(
		http.MethodGet,
		"/status",
		controlsound.New(s.ControlSound, controlsoundservice.ActionStatus),
	)
	soundRouter.Method(
		http.MethodPost,
		"/stop",
		controlsound.New(s.ControlSound, controlsoundservice.ActionStop),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/reminders", reminderRouter)
	router.Mount("/sounds", soundRouter)
	router.Method(http.MethodGet, "/assets/*", assets.New(s.ServeAsset))
	router.Group(func(r chi.Router) {
		r.Use(auth.SetAuthTokenToContext)
		r.Method(http.MethodPut, "/meal-plan", mealplan.New(s.DeriveReminders))
		r.Method(http.MethodPost, "/scheduler/activate", scheduler.New(s.RescheduleReminders))
		r.Method(http.MethodPut, "/notifications/permission", notifications.New(s.SetNotificationPermission))
		r.Method(http.MethodGet, "/events", events.New(deps.Logger, deps.SseServer, s.RescheduleReminders))
	})

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
