package mealplan

import (
	"encoding/json"
	"errors"
	"io"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/mealplan"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/derive_reminders"
	"mealremind/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
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

type Slot struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

type Input struct {
	Meals    map[string]int  `json:"meals"`
	Schedule map[string]Slot `json:"schedule"`
}

type Result struct {
	Created []response.Reminder `json:"created"`
	Updated []response.Reminder `json:"updated"`
}

func (i *Input) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Meals, validation.Required, validation.Length(1, len(reminder.MealTimes))),
		validation.Field(&i.Schedule, validation.Length(0, len(reminder.MealTimes))),
	)
}

func (i Input) Plan() (plan mealplan.Plan, err error) {
	plan.Meals = make(map[reminder.MealTime]int, len(i.Meals))
	for raw, count := range i.Meals {
		m, err := reminder.ParseMealTime(raw)
		if err != nil {
			return plan, err
		}
		plan.Meals[m] = count
	}
	plan.Schedule = make(map[reminder.MealTime]reminder.Slot, len(i.Schedule))
	for raw, slot := range i.Schedule {
		m, err := reminder.ParseMealTime(raw)
		if err != nil {
			return plan, err
		}
		t, err := reminder.ParseTimeOfDay(slot.Time)
		if err != nil {
			return plan, err
		}
		plan.Schedule[m] = reminder.Slot{Time: t, Label: slot.Label}
	}
	return plan, nil
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderBadRequest(rw, "invalid request data")
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}
	plan, err := input.Plan()
	if err != nil {
		response.RenderBadRequest(rw, err.Error())
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Plan: plan})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		case errors.Is(err, reminder.ErrReminderVersionConflict):
			response.RenderConflict(rw, err)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(
		rw,
		Result{
			Created: response.FromDomainReminders(result.Created),
			Updated: response.FromDomainReminders(result.Updated),
		},
		http.StatusOK,
	)
}
