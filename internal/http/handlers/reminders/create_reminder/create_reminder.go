package createreminder

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/create_reminder"
	"mealremind/internal/http/handlers/reminders"
	"mealremind/internal/http/handlers/response"
	"net/http"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := reminders.Fields{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderBadRequest(rw, "invalid request data")
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}
	parsed, err := input.Parse()
	if err != nil {
		response.RenderBadRequest(rw, err.Error())
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			MealTime:       parsed.MealTime,
			ReminderTime:   parsed.ReminderTime,
			Enabled:        parsed.Enabled,
			Label:          parsed.Label,
			SoundID:        parsed.SoundID,
			AdvanceWarning: parsed.AdvanceWarning,
			Repeat:         parsed.Repeat,
			RepeatInterval: parsed.RepeatInterval,
			MaxRepeats:     parsed.MaxRepeats,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		case errors.Is(err, reminder.ErrReminderAlreadyExists):
			response.RenderConflict(rw, err)
		case reminders.IsInvalidReminder(err):
			response.RenderUnprocessable(rw, err)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: rem}, http.StatusCreated)
}
