package previewsound

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	ratelimiter "mealremind/internal/core/domain/rate_limiter"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/preview_sound"
	"mealremind/internal/http/handlers/response"
	"net/http"

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
	Sound response.Sound `json:"sound"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	soundID := chi.URLParam(r, "soundID")
	if soundID == "" || len(soundID) > 64 {
		response.RenderBadRequest(rw, "invalid sound ID")
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{SoundID: soundID})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	s := response.Sound{}
	s.FromDomainType(result.Sound)
	response.Render(rw, Result{Sound: s}, http.StatusOK)
}
