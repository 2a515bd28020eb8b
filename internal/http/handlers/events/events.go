package events

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/services"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/reschedule_reminders"
	"mealremind/internal/http/handlers/response"
	pageevents "mealremind/internal/implementations/page_events"
	"net/http"

	"github.com/r3labs/sse/v2"
)

const REASON_PAGE_SUBSCRIBED = "page-subscribed"

type Handler struct {
	log       logging.Logger
	service   services.Service[service.Input, service.Result]
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[service.Input, service.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

// ServeHTTP subscribes the page to its event stream. Every new subscription is a
// page activation, so the foreground scheduler runs a pass first.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{Reason: REASON_PAGE_SUBSCRIBED})
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		response.RenderUnauthorized(rw)
		return
	case err != nil:
		h.log.Warning(r.Context(), "Scheduling pass failed on page subscription.", logging.Entry("err", err))
	}

	query := r.URL.Query()
	query.Set("stream", pageevents.STREAM_ID)
	r.URL.RawQuery = query.Encode()

	go func() {
		<-r.Context().Done()
		h.log.Info(r.Context(), "Unsubscribed from page events.")
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to page events.",
		logging.Entry("streamID", pageevents.STREAM_ID),
		logging.Entry("armed", result.Armed),
	)
	h.sseServer.ServeHTTP(rw, r)
}
