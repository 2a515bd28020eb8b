package auth

import (
	"context"
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

var ErrNotAuthenticated = errors.New("access token is missing or invalid")

type TokenValidator interface {
	ValidateToken(token string, hash string) bool
}

type service[T any, S any] struct {
	validator TokenValidator
	tokenHash string
	inner     services.Service[T, S]
}

// WithAuthentication lets a call through only when the context carries the access token matching tokenHash.
func WithAuthentication[T any, S any](
	validator TokenValidator,
	tokenHash string,
	inner services.Service[T, S],
) services.Service[T, S] {
	if validator == nil {
		panic(e.NewNilArgumentError("validator"))
	}
	if tokenHash == "" {
		panic(e.NewInvalidArgumentError("tokenHash", "must not be empty"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		validator: validator,
		tokenHash: tokenHash,
		inner:     inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(string)
	if !ok || authToken == "" {
		return result, ErrNotAuthenticated
	}
	if !s.validator.ValidateToken(authToken, s.tokenHash) {
		return result, ErrNotAuthenticated
	}
	return s.inner.Run(ctx, input)
}
