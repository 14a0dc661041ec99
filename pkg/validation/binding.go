package validation

import (
	"context"
	"slices"
)

// Input is the host-side source of a field's current value.
type Input interface {
	Value() any
	Disabled() bool
}

type inputFuncs struct {
	value    func() any
	disabled func() bool
}

func (i inputFuncs) Value() any {
	if i.value == nil {
		return nil
	}
	return i.value()
}

func (i inputFuncs) Disabled() bool {
	return i.disabled != nil && i.disabled()
}

// NewInput adapts a pair of functions to Input. Either may be nil.
func NewInput(value func() any, disabled func() bool) Input {
	return inputFuncs{value: value, disabled: disabled}
}

// FieldIdentifier names one field of one model instance.
type FieldIdentifier struct {
	Model any
	Name  string
}

// FieldBinding ties a unit to a model field. Accessor returns the field's
// current value; it replaces any lookup by reflection.
type FieldBinding struct {
	ID       FieldIdentifier
	Accessor func() any
}

// AnnotationSource reports the declarative-rule errors for one field.
// A returned error is a collaborator fault and is propagated to the caller
// of the validation run, never turned into a validation failure.
type AnnotationSource interface {
	FieldErrors(ctx context.Context, field FieldIdentifier, value any) ([]string, error)
}

// AnnotationSourceFunc adapts a function to AnnotationSource.
type AnnotationSourceFunc func(ctx context.Context, field FieldIdentifier, value any) ([]string, error)

// FieldErrors calls f.
func (f AnnotationSourceFunc) FieldErrors(ctx context.Context, field FieldIdentifier, value any) ([]string, error) {
	return f(ctx, field, value)
}

// ErrorStore is the host's own per-field message surface. The annotation
// handler keeps it in step with unit results.
type ErrorStore interface {
	Clear(field FieldIdentifier)
	Add(field FieldIdentifier, message string)
}

// BindingContext is what the annotation handler needs from the host: the
// bound model, where rules come from, and where messages go.
type BindingContext struct {
	Model  any
	Source AnnotationSource
	Store  ErrorStore
}

// Identify returns the identifier of the named field on the bound model.
func (c *BindingContext) Identify(field string) FieldIdentifier {
	return FieldIdentifier{Model: c.Model, Name: field}
}

// MemoryStore is an in-memory ErrorStore keyed by field name. Use one store
// per bound model.
type MemoryStore struct {
	fields   []string
	messages map[string][]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[string][]string)}
}

// Clear removes all messages for field.
func (s *MemoryStore) Clear(field FieldIdentifier) {
	if _, ok := s.messages[field.Name]; !ok {
		return
	}
	delete(s.messages, field.Name)
	s.fields = slices.DeleteFunc(s.fields, func(name string) bool { return name == field.Name })
}

// Add appends a message for field.
func (s *MemoryStore) Add(field FieldIdentifier, message string) {
	if _, ok := s.messages[field.Name]; !ok {
		s.fields = append(s.fields, field.Name)
	}
	s.messages[field.Name] = append(s.messages[field.Name], message)
}

// Messages returns a copy of the messages recorded for the named field.
func (s *MemoryStore) Messages(name string) []string {
	return slices.Clone(s.messages[name])
}

// Fields returns the names of fields with at least one message, in the
// order they first received one.
func (s *MemoryStore) Fields() []string {
	return slices.Clone(s.fields)
}

// Len returns the total number of stored messages.
func (s *MemoryStore) Len() int {
	n := 0
	for _, msgs := range s.messages {
		n += len(msgs)
	}
	return n
}
