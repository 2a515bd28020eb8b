package events

import (
	"context"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/services/auth"
	service "mealremind/internal/core/services/reschedule_reminders"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	return result, s.err
}

func TestUnauthenticatedSubscriptionIsRejected(t *testing.T) {
	sseServer := sse.New()
	defer sseServer.Close()
	stub := &stubService{err: auth.ErrNotAuthenticated}
	handler := New(logging.NewFakeLogger(), sseServer, stub)
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, REASON_PAGE_SUBSCRIBED, stub.input.Reason)
}
