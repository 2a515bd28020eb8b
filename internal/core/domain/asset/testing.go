package asset

import (
	"context"
	"sort"
	"sync"
)

type FakeOrigin struct {
	Responses map[string]Response
	Err       error
	Fetched   []string
	lock      sync.Mutex
}

func NewFakeOrigin(responses map[string]Response) *FakeOrigin {
	return &FakeOrigin{Responses: responses}
}

func (o *FakeOrigin) Fetch(ctx context.Context, path string) (Response, error) {
	o.lock.Lock()
	defer o.lock.Unlock()

	o.Fetched = append(o.Fetched, path)
	if o.Err != nil {
		return Response{}, o.Err
	}
	response, ok := o.Responses[path]
	if !ok {
		return Response{Status: 404}, nil
	}
	return response, nil
}

type FakeCache struct {
	Entries map[string]map[string]Response
	lock    sync.Mutex
}

func NewFakeCache() *FakeCache {
	return &FakeCache{Entries: make(map[string]map[string]Response)}
}

func (c *FakeCache) Put(ctx context.Context, generation string, path string, response Response) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.Entries[generation] == nil {
		c.Entries[generation] = make(map[string]Response)
	}
	c.Entries[generation][path] = response
	return nil
}

func (c *FakeCache) Get(ctx context.Context, generation string, path string) (Response, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	response, ok := c.Entries[generation][path]
	if !ok {
		return Response{}, ErrAssetNotCached
	}
	return response, nil
}

func (c *FakeCache) Generations(ctx context.Context) ([]string, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	generations := make([]string, 0, len(c.Entries))
	for g := range c.Entries {
		generations = append(generations, g)
	}
	sort.Strings(generations)
	return generations, nil
}

func (c *FakeCache) Drop(ctx context.Context, generation string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	delete(c.Entries, generation)
	return nil
}
