package mocks

import "spacebook/infras/otel"

// Scope records what a traced operation reported so tests can assert on it.
type Scope struct {
	Ended      bool
	Errors     []error
	Events     []string
	Attributes map[string]any
}

func NewScope() otel.Scope {
	return &Scope{Attributes: map[string]any{}}
}

func (s *Scope) End() { s.Ended = true }

func (s *Scope) TraceError(err error) { s.Errors = append(s.Errors, err) }

func (s *Scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *Scope) AddEvent(name string) { s.Events = append(s.Events, name) }

func (s *Scope) SetAttribute(key string, value any) { s.Attributes[key] = value }

func (s *Scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
