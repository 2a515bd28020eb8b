package notifications

import (
	"encoding/json"
	"errors"
	"io"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/set_notification_permission"
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

type Input struct {
	Permission string `json:"permission"`
}

type Result struct {
	Permission string `json:"permission"`
}

func (i *Input) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Permission, validation.Required, validation.In("default", "granted", "denied")),
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
	permission, err := notification.ParsePermission(input.Permission)
	if err != nil {
		response.RenderBadRequest(rw, err.Error())
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Permission: permission})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{Permission: result.Permission.String()}, http.StatusOK)
}
