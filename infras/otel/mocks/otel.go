package mocks

import (
	"context"
	"sync"

	"spacebook/infras/otel"
)

// Otel hands out recording scopes keyed by span name. Nothing is exported.
// The zero value is ready to use.
type Otel struct {
	mu     sync.Mutex
	scopes map[string]*Scope
}

func NewOtel() otel.Otel {
	return &Otel{scopes: map[string]*Scope{}}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope, _ := NewScope().(*Scope)

	o.mu.Lock()
	if o.scopes == nil {
		o.scopes = map[string]*Scope{}
	}
	o.scopes[spanName] = scope
	o.mu.Unlock()

	return ctx, scope
}

// Scope returns the last scope opened under spanName, or nil.
func (o *Otel) Scope(spanName string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[spanName]
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}
