package scheduler

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/reschedule_reminders"
	"mealremind/internal/http/handlers/response"
	"net/http"
)

const REASON_PAGE_ACTIVATED = "page-activated"

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
	Armed    int  `json:"armed"`
	SyncSent bool `json:"sync_sent"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{Reason: REASON_PAGE_ACTIVATED})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{Armed: result.Armed, SyncSent: result.SyncSent}, http.StatusOK)
}
