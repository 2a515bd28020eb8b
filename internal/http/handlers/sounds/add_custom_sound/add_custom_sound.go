package addcustomsound

import (
	"encoding/json"
	"errors"
	"io"
	e "mealremind/internal/core/domain/errors"
	ratelimiter "mealremind/internal/core/domain/rate_limiter"
	"mealremind/internal/core/domain/sound"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/add_custom_sound"
	"mealremind/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
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

type Input struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Result struct {
	Sound response.Sound `json:"sound"`
}

func (i *Input) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&i.URL, validation.Required, validation.Length(1, 2048), is.URL),
	)
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

	result, err := h.service.Run(r.Context(), service.Input{Name: input.Name, URL: input.URL})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, sound.ErrInvalidSoundURL) || errors.Is(err, sound.ErrInvalidSoundName):
			response.RenderUnprocessable(rw, err)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	s := response.Sound{}
	s.FromDomainType(result.Sound)
	response.Render(rw, Result{Sound: s}, http.StatusCreated)
}
