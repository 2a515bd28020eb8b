package asset

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrAssetNotCached = errors.New("asset is not cached")
	ErrOriginFailed   = errors.New("asset origin request failed")
)

// Manifest is the set of paths precached when the background context activates.
var Manifest = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/favicon.ico.png",
	"/placeholder.svg",
}

type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func (r Response) OK() bool {
	return r.Status == http.StatusOK
}

// Origin fetches assets from the network.
type Origin interface {
	Fetch(ctx context.Context, path string) (Response, error)
}

// Cache is a set of named cache generations. Only one generation is current.
type Cache interface {
	Put(ctx context.Context, generation string, path string, response Response) error
	Get(ctx context.Context, generation string, path string) (Response, error)
	Generations(ctx context.Context) ([]string, error)
	Drop(ctx context.Context, generation string) error
}
