package updatereminder

import (
	"encoding/json"
	"errors"
	"io"
	c "mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/update_reminder"
	"mealremind/internal/http/handlers/reminders"
	"mealremind/internal/http/handlers/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const MAX_ADJUST_MINUTES = 24 * 60

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

type Input struct {
	reminders.Fields
	Version       uint32 `json:"version"`
	AdjustMinutes *int   `json:"adjust_minutes"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(i)
}

func (i Input) Validate() error {
	if err := i.Fields.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&i,
		validation.Field(&i.Version, validation.Required),
		validation.Field(&i.AdjustMinutes, validation.Min(-MAX_ADJUST_MINUTES), validation.Max(MAX_ADJUST_MINUTES)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "reminderID")
	if reminderID == "" {
		response.RenderBadRequest(rw, "invalid reminder ID")
		return
	}

	input := Input{}
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

	var adjust c.Optional[int]
	if input.AdjustMinutes != nil {
		adjust = c.Some(*input.AdjustMinutes)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Reminder: reminder.Reminder{
				ID:             reminder.ID(reminderID),
				MealTime:       parsed.MealTime,
				ReminderTime:   parsed.ReminderTime,
				Enabled:        parsed.Enabled,
				Label:          parsed.Label,
				SoundID:        parsed.SoundID,
				AdvanceWarning: parsed.AdvanceWarning,
				Repeat:         parsed.Repeat,
				RepeatInterval: parsed.RepeatInterval,
				MaxRepeats:     parsed.MaxRepeats,
				Version:        input.Version,
			},
			AdjustMinutes: adjust,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			response.RenderNotFound(rw, err)
		case errors.Is(err, reminder.ErrReminderVersionConflict):
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
	response.Render(rw, Result{Reminder: rem}, http.StatusOK)
}
