package dismissreminder

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/domain/schedule"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/dismiss_reminder"
	"mealremind/internal/http/handlers/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
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
	Occurrence time.Time `json:"occurrence"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "reminderID")
	if reminderID == "" {
		response.RenderBadRequest(rw, "invalid reminder ID")
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{ID: reminder.ID(reminderID)})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			response.RenderNotFound(rw, err)
		case errors.Is(err, schedule.ErrNothingToDismiss):
			response.RenderConflict(rw, err)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{Occurrence: result.Occurrence}, http.StatusOK)
}
