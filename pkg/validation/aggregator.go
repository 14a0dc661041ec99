package validation

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrClosed is returned when attaching to an Aggregator after Close.
var ErrClosed = errors.New("aggregator is closed")

type options struct {
	mode                 Mode
	validateOnAttach     bool
	missingFieldsMessage string
	model                any
	binding              *BindingContext
	source               AnnotationSource
	store                ErrorStore
	logger               *slog.Logger
}

// Option configures an Aggregator.
type Option func(*options)

// WithMode sets ModeAuto (the default) or ModeManual.
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithValidateOnAttach makes an Auto-mode aggregator validate each enabled
// unit as it attaches.
func WithValidateOnAttach(enabled bool) Option {
	return func(o *options) {
		o.validateOnAttach = enabled
	}
}

// WithMissingFieldsMessage overrides DefaultMissingFieldsMessage.
func WithMissingFieldsMessage(msg string) Option {
	return func(o *options) {
		o.missingFieldsMessage = msg
	}
}

// WithModel binds the aggregator to a model. A BindingContext is built
// around it from WithAnnotationSource and WithErrorStore; the store defaults
// to a MemoryStore. Mutually exclusive with WithBindingContext.
func WithModel(model any) Option {
	return func(o *options) {
		o.model = model
	}
}

// WithBindingContext supplies an externally constructed binding context.
// Mutually exclusive with WithModel.
func WithBindingContext(bc *BindingContext) Option {
	return func(o *options) {
		o.binding = bc
	}
}

// WithAnnotationSource sets the rule source for a model bound with WithModel.
func WithAnnotationSource(src AnnotationSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithErrorStore sets the error store for a model bound with WithModel.
func WithErrorStore(store ErrorStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets the logger used by the aggregator and handed to units
// that have none of their own.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Aggregator owns the units of one form and derives the form's status from
// theirs.
//
// Like Unit, an Aggregator is driven from a single goroutine. Attach and
// Detach may be called from inside event callbacks, including while
// ValidateAll is iterating.
type Aggregator struct {
	mode                 Mode
	validateOnAttach     bool
	missingFieldsMessage string
	binding              *BindingContext

	units []*Unit
	subs  map[*Unit][]*Subscription

	status   Status
	messages []string
	closed   bool
	running  bool

	statusChanged listeners[FormEvent]
	validatedAll  listeners[struct{}]
	clearing      listeners[struct{}]
	logger        *slog.Logger
}

// New creates an Aggregator. Supplying both WithModel and WithBindingContext
// is a configuration error wrapping ErrConflictingBinding.
func New(opts ...Option) (*Aggregator, error) {
	o := options{
		mode:                 ModeAuto,
		missingFieldsMessage: DefaultMissingFieldsMessage,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.model != nil && o.binding != nil {
		return nil, errors.WithHint(ErrConflictingBinding, "pass WithModel or WithBindingContext, not both")
	}

	binding := o.binding
	if o.model != nil {
		store := o.store
		if store == nil {
			store = NewMemoryStore()
		}
		binding = &BindingContext{Model: o.model, Source: o.source, Store: store}
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	msg := o.missingFieldsMessage
	if msg == "" {
		msg = DefaultMissingFieldsMessage
	}

	return &Aggregator{
		mode:                 o.mode,
		validateOnAttach:     o.validateOnAttach,
		missingFieldsMessage: msg,
		binding:              binding,
		subs:                 make(map[*Unit][]*Subscription),
		logger:               logger,
	}, nil
}

// Mode returns the aggregator's validation mode.
func (a *Aggregator) Mode() Mode { return a.mode }

// Binding returns the binding context units inherit, or nil.
func (a *Aggregator) Binding() *BindingContext { return a.binding }

// Status returns the aggregate status last raised.
func (a *Aggregator) Status() Status { return a.status }

// Messages returns the aggregate messages last raised.
func (a *Aggregator) Messages() []string { return slices.Clone(a.messages) }

// Units returns the attached units in attach order.
func (a *Aggregator) Units() []*Unit { return slices.Clone(a.units) }

// Len returns the number of attached units.
func (a *Aggregator) Len() int { return len(a.units) }

// Has reports whether u is attached.
func (a *Aggregator) Has(u *Unit) bool {
	_, ok := a.subs[u]
	return ok
}

// Unit returns the attached unit with the given name, or nil.
func (a *Aggregator) Unit(name string) *Unit {
	for _, u := range a.units {
		if u.name == name {
			return u
		}
	}
	return nil
}

// OnStatusChanged registers fn for aggregate status changes.
func (a *Aggregator) OnStatusChanged(fn func(FormEvent)) *Subscription {
	return a.statusChanged.add(fn)
}

// OnValidatedAll registers fn to run whenever every unit has passed.
func (a *Aggregator) OnValidatedAll(fn func()) *Subscription {
	return a.validatedAll.add(func(struct{}) { fn() })
}

// OnClearing registers fn to run when ClearAll starts.
func (a *Aggregator) OnClearing(fn func()) *Subscription {
	return a.clearing.add(func(struct{}) { fn() })
}

// Attach adds u to the form. Attaching a unit that is already present is a
// no-op. The unit takes the aggregator's mode and, unless it has its own,
// its binding context. With validate-on-attach in ModeAuto an enabled unit is
// validated immediately; if that run fails with an error the unit is detached
// again and the error returned.
func (a *Aggregator) Attach(ctx context.Context, u *Unit) error {
	if u == nil || a.Has(u) {
		return nil
	}
	if a.closed {
		return ErrClosed
	}

	a.units = append(a.units, u)
	u.mode = a.mode
	if u.binding == nil {
		u.inherited = a.binding
	}
	if !u.ownLogger {
		u.logger = a.logger
	}

	a.subs[u] = []*Subscription{
		u.OnStatusChanged(func(UnitEvent) { a.onUnitStatusChanged(u) }),
		a.clearing.add(func(struct{}) { u.Clear() }),
	}
	a.logger.Debug("unit attached", "field", u.name, "handler", u.kind, "units", len(a.units))

	if a.validateOnAttach && a.mode == ModeAuto && !u.Disabled() {
		if _, err := u.ValidateAsync(ctx); err != nil {
			a.Detach(u)
			return errors.Wrapf(err, "validating field %q on attach", u.name)
		}
	}
	return nil
}

// Detach removes u from the form and drops the aggregator's subscriptions
// on it. Detaching an absent unit is a no-op.
func (a *Aggregator) Detach(u *Unit) {
	subs, ok := a.subs[u]
	if !ok {
		return
	}
	for _, s := range subs {
		s.Unsubscribe()
	}
	delete(a.subs, u)
	a.units = slices.DeleteFunc(a.units, func(x *Unit) bool { return x == u })
	u.inherited = nil
	a.logger.Debug("unit detached", "field", u.name, "units", len(a.units))
}

// Close detaches every unit so none can notify the aggregator again.
func (a *Aggregator) Close() {
	for _, u := range slices.Clone(a.units) {
		a.Detach(u)
	}
	a.closed = true
}

// ValidateAll runs every enabled unit's asynchronous validation, one after
// another in attach order, and reports whether none of them failed. Units
// attached or detached by callbacks during the run do not disturb it: the
// list is snapshotted first and detached units are skipped.
//
// Per-unit aggregate updates are held back while the pass runs, so a pass
// raises one aggregate status change and at most one validated-all
// notification.
//
// A run error (cancellation or collaborator fault) stops the iteration and is
// returned; units not yet reached keep their status. In ModeAuto the aggregate
// is then re-derived from the units that did run.
func (a *Aggregator) ValidateAll(ctx context.Context) (bool, error) {
	return a.validateAll(func(u *Unit) (Status, error) {
		return u.ValidateAsync(ctx)
	})
}

// Validate is the synchronous counterpart of ValidateAll.
func (a *Aggregator) Validate() (bool, error) {
	return a.validateAll(func(u *Unit) (Status, error) {
		return u.Validate()
	})
}

func (a *Aggregator) validateAll(run func(*Unit) (Status, error)) (bool, error) {
	prev := a.running
	a.running = true
	defer func() { a.running = prev }()

	ok := true
	for _, u := range slices.Clone(a.units) {
		if !a.Has(u) {
			continue
		}
		if u.Disabled() {
			a.logger.Debug("skipping disabled field", "field", u.name)
			continue
		}
		status, err := run(u)
		if err != nil {
			if a.mode == ModeAuto {
				derived, messages := a.derive()
				a.raise(derived, messages, nil)
			}
			return false, errors.Wrapf(err, "validating field %q", u.name)
		}
		if status == StatusError {
			ok = false
		}
	}

	status, messages := a.derive()
	if !ok {
		a.raise(StatusError, messages, nil)
		return false, nil
	}
	a.raise(status, messages, nil)
	a.validatedAll.emit(struct{}{})
	return true, nil
}

// ClearAll signals every unit to reset and raises an aggregate StatusNone.
func (a *Aggregator) ClearAll() {
	a.clearing.emit(struct{}{})
	a.raise(StatusNone, nil, nil)
}

func (a *Aggregator) onUnitStatusChanged(u *Unit) {
	if a.mode == ModeManual || a.running {
		return
	}
	status, messages := a.derive()
	a.raise(status, messages, u)
	if status == StatusSuccess {
		a.validatedAll.emit(struct{}{})
	}
}

// derive computes the aggregate status: Error if any unit failed, Success if
// at least one unit exists and all passed, None otherwise.
func (a *Aggregator) derive() (Status, []string) {
	if len(a.units) == 0 {
		return StatusNone, nil
	}

	allPassed := true
	failed := false
	for _, u := range a.units {
		switch u.status {
		case StatusError:
			failed = true
			allPassed = false
		case StatusSuccess:
		default:
			allPassed = false
		}
	}

	switch {
	case failed:
		return StatusError, a.collate()
	case allPassed:
		return StatusSuccess, nil
	default:
		return StatusNone, nil
	}
}

// collate concatenates the own messages of failed units in attach order and
// appends the missing-fields message once if any failed unit has none.
func (a *Aggregator) collate() []string {
	var (
		out     []string
		missing bool
	)
	for _, u := range a.units {
		if u.status != StatusError {
			continue
		}
		if len(u.messages) == 0 {
			missing = true
			continue
		}
		out = append(out, u.messages...)
	}
	if missing {
		out = append(out, a.missingFieldsMessage)
	}
	return out
}

func (a *Aggregator) raise(status Status, messages []string, u *Unit) {
	a.status = status
	a.messages = slices.Clone(messages)
	a.logger.Debug("form status changed", "status", status, "messages", len(messages))
	a.statusChanged.emit(FormEvent{Status: status, Messages: slices.Clone(messages), Unit: u})
}
