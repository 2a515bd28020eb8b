package notifications

import (
	"context"
	"mealremind/internal/core/domain/notification"
	service "mealremind/internal/core/services/set_notification_permission"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	result.Permission = input.Permission
	return result, nil
}

func TestPermissionHandler(t *testing.T) {
	cases := []struct {
		body               string
		expectedStatus     int
		expectedPermission *notification.Permission
	}{
		{body: `{"permission": "granted"}`, expectedStatus: http.StatusOK, expectedPermission: &notification.PermissionGranted},
		{body: `{"permission": "denied"}`, expectedStatus: http.StatusOK, expectedPermission: &notification.PermissionDenied},
		{body: `{"permission": "maybe"}`, expectedStatus: http.StatusBadRequest},
		{body: `{}`, expectedStatus: http.StatusBadRequest},
	}

	for _, testCase := range cases {
		t.Run(testCase.body, func(t *testing.T) {
			stub := &stubService{}
			req := httptest.NewRequest(http.MethodPut, "/notifications/permission", strings.NewReader(testCase.body))
			rr := httptest.NewRecorder()

			New(stub).ServeHTTP(rr, req)

			assert.Equal(t, testCase.expectedStatus, rr.Code)
			if testCase.expectedPermission == nil {
				assert.Nil(t, stub.input)
				return
			}
			assert.Equal(t, *testCase.expectedPermission, stub.input.Permission)
		})
	}
}
