package controlsound

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/control_sound"
	"mealremind/internal/http/handlers/response"
	"net/http"
)

// Handler serves both the status and the stop endpoint; the action is fixed per route.
type Handler struct {
	service services.Service[service.Input, service.Result]
	action  service.Action
}

func New(
	service services.Service[service.Input, service.Result],
	action service.Action,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, action: action}
}

type Result struct {
	Status response.SoundStatus `json:"status"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{Action: h.action})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	status := response.SoundStatus{}
	status.FromDomainType(result.Status)
	response.Render(rw, Result{Status: status}, http.StatusOK)
}
