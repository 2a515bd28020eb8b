package assets

import (
	"errors"
	"fmt"
	"mealremind/internal/core/domain/asset"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/services"
	service "mealremind/internal/core/services/serve_asset"
	"mealremind/internal/http/handlers/response"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const MAX_PATH_LEN = 512

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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	path := "/" + strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if len(path) > MAX_PATH_LEN || strings.Contains(path, "..") {
		response.RenderBadRequest(rw, "invalid asset path")
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Path: path})
	if err != nil {
		switch {
		case errors.Is(err, asset.ErrOriginFailed):
			response.RenderError(rw, "asset is unavailable", http.StatusBadGateway)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	if result.Response.ContentType != "" {
		rw.Header().Set("Content-Type", result.Response.ContentType)
	}
	rw.Header().Set("X-Cache", fmt.Sprintf("%t", result.FromCache))
	rw.WriteHeader(result.Response.Status)
	rw.Write(result.Response.Body)
}
