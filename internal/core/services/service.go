package services

import "context"

// Service is a single use case. Handlers, consumers and timer callbacks
// depend on this interface rather than on concrete service structs.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
