package setnotificationpermission

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/services"
)

type Input struct {
	Permission notification.Permission
}

type Result struct {
	Permission notification.Permission
}

type service struct {
	log   logging.Logger
	state notification.PermissionState
}

func New(log logging.Logger, state notification.PermissionState) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if state == nil {
		panic(e.NewNilArgumentError("state"))
	}
	return &service{log: log, state: state}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Permission == (notification.Permission{}) {
		return result, notification.ErrParsePermission
	}
	s.state.SetPermission(ctx, input.Permission)
	result.Permission = s.state.Permission(ctx)
	return result, nil
}
