package setnotificationpermission

import (
	"context"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetPermission(t *testing.T) {
	state := &notification.FakePermissionState{Current: notification.PermissionDefault}
	service := New(logging.NewFakeLogger(), state)

	result, err := service.Run(context.Background(), Input{Permission: notification.PermissionGranted})

	assert.Nil(t, err)
	assert.Equal(t, notification.PermissionGranted, result.Permission)
	assert.Equal(t, notification.PermissionGranted, state.Current)
}

func TestZeroPermissionIsRejected(t *testing.T) {
	state := &notification.FakePermissionState{Current: notification.PermissionDenied}
	service := New(logging.NewFakeLogger(), state)

	_, err := service.Run(context.Background(), Input{})

	assert.ErrorIs(t, err, notification.ErrParsePermission)
	assert.Equal(t, notification.PermissionDenied, state.Current)
}
