package validation

import "slices"

// UnitEvent is raised by a Unit whenever its status changes.
type UnitEvent struct {
	Status   Status
	Messages []string
}

// FormEvent is raised by an Aggregator whenever the aggregate status changes.
// Unit is the unit whose change triggered the event, or nil for events raised
// by ValidateAll, Validate and ClearAll.
type FormEvent struct {
	Status   Status
	Messages []string
	Unit     *Unit
}

// Subscription is the handle returned when registering a listener.
// Unsubscribe is idempotent and safe to call on a nil Subscription.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the listener. Events already being delivered to other
// listeners are unaffected.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

type listener[T any] struct {
	fn      func(T)
	removed bool
}

// listeners is a synchronous observer list. Delivery happens on the caller's
// goroutine in registration order over a snapshot, so listeners may subscribe
// or unsubscribe while an event is being delivered.
type listeners[T any] struct {
	subs []*listener[T]
}

func (l *listeners[T]) add(fn func(T)) *Subscription {
	entry := &listener[T]{fn: fn}
	l.subs = append(l.subs, entry)
	return &Subscription{cancel: func() {
		entry.removed = true
		l.subs = slices.DeleteFunc(l.subs, func(s *listener[T]) bool { return s == entry })
	}}
}

func (l *listeners[T]) emit(ev T) {
	for _, s := range slices.Clone(l.subs) {
		if s.removed {
			continue
		}
		s.fn(ev)
	}
}

func (l *listeners[T]) len() int {
	return len(l.subs)
}
