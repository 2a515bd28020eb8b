package listsounds

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/list_sounds"
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
	Sounds []response.Sound `json:"sounds"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	sounds := make([]response.Sound, 0, len(result.Sounds))
	for _, s := range result.Sounds {
		sound := response.Sound{}
		sound.FromDomainType(s)
		sounds = append(sounds, sound)
	}
	response.Render(rw, Result{Sounds: sounds}, http.StatusOK)
}
