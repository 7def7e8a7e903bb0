// Package mocks provides in-memory stand-ins for the tracer. Spans are kept so
// tests can check what was traced.
package mocks

import (
	"context"
	"sync"

	"taskboard/infras/otel"
)

type Otel struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := &Scope{Name: spanName, Attributes: map[string]any{}}

	o.mu.Lock()
	o.scopes = append(o.scopes, scope)
	o.mu.Unlock()

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the most recent span with the given name, or nil.
func (o *Otel) Scope(name string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := len(o.scopes) - 1; i >= 0; i-- {
		if o.scopes[i].Name == name {
			return o.scopes[i]
		}
	}

	return nil
}

func NewOtel() *Otel {
	return &Otel{}
}
