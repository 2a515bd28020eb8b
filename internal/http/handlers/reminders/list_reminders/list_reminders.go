package listreminders

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/list_reminders"
	"mealremind/internal/http/handlers/response"
	"net/http"
	"strconv"
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
	Reminders []response.Reminder `json:"reminders"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	enabledOnly, err := parseEnabledOnly(r.URL.Query().Get("enabled_only"))
	if err != nil {
		response.RenderBadRequest(rw, "invalid enabled_only query parameter")
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{EnabledOnly: enabledOnly})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{Reminders: response.FromDomainReminders(result.Reminders)}, http.StatusOK)
}

func parseEnabledOnly(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
