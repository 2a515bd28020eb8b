package pageevents

import (
	"context"
	"sync"
)

type Recorded struct {
	Kind    string
	Payload any
}

type FakePublisher struct {
	Err    error
	events []Recorded
	lock   sync.Mutex
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (p *FakePublisher) Publish(ctx context.Context, kind string, payload any) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, Recorded{Kind: kind, Payload: payload})
	return nil
}

func (p *FakePublisher) Kinds() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	kinds := make([]string, 0, len(p.events))
	for _, event := range p.events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

func (p *FakePublisher) Events() []Recorded {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]Recorded(nil), p.events...)
}
