package notification

import (
	"context"
	"errors"
)

var ErrParsePermission = errors.New("invalid notification permission")

type Permission struct {
	v string
}

func (p Permission) String() string {
	return p.v
}

func (p Permission) MarshalText() ([]byte, error) {
	return []byte(p.v), nil
}

func (p *Permission) UnmarshalText(text []byte) error {
	parsed, err := ParsePermission(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func ParsePermission(value string) (Permission, error) {
	switch value {
	case "default":
		return PermissionDefault, nil
	case "granted":
		return PermissionGranted, nil
	case "denied":
		return PermissionDenied, nil
	default:
		return Permission{}, ErrParsePermission
	}
}

var (
	PermissionDefault = Permission{v: "default"}
	PermissionGranted = Permission{v: "granted"}
	PermissionDenied  = Permission{v: "denied"}
)

// PermissionState is where a displayer learns whether it may show anything.
type PermissionState interface {
	Permission(ctx context.Context) Permission
	SetPermission(ctx context.Context, p Permission)
}

// PermissionRequester asks the user for permission. Implementations request at most once per state change.
type PermissionRequester interface {
	RequestPermission(ctx context.Context)
}
