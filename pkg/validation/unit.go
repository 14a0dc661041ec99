package validation

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"slices"

	"github.com/cockroachdb/errors"
)

// UnitOption configures a Unit.
type UnitOption func(*Unit)

// WithHandler selects the validation strategy. The default is HandlerValidator.
func WithHandler(kind HandlerKind) UnitOption {
	return func(u *Unit) {
		u.kind = kind
	}
}

// WithPattern sets the regular expression used by the pattern handler.
// The expression is compiled by NewUnit.
func WithPattern(expr string) UnitOption {
	return func(u *Unit) {
		u.patternExpr = expr
	}
}

// WithPatternRegexp sets an already compiled pattern.
func WithPatternRegexp(re *regexp.Regexp) UnitOption {
	return func(u *Unit) {
		u.pattern = re
		u.patternExpr = ""
	}
}

// WithCustomMessage replaces the messages of any failed run with msg.
func WithCustomMessage(msg string) UnitOption {
	return func(u *Unit) {
		u.customMessage = msg
	}
}

// WithValidator sets the synchronous custom validator.
func WithValidator(fn ValidatorFunc) UnitOption {
	return func(u *Unit) {
		u.validate = fn
	}
}

// WithAsyncValidator sets the asynchronous custom validator.
func WithAsyncValidator(fn AsyncValidatorFunc) UnitOption {
	return func(u *Unit) {
		u.validateAsync = fn
	}
}

// WithChecker sets a Checker as the custom validator. It takes precedence
// over validator functions.
func WithChecker(c Checker) UnitOption {
	return func(u *Unit) {
		u.checker = c
	}
}

// WithAccessor registers the function the annotation handler reads the
// bound field's value through.
func WithAccessor(fn func() any) UnitOption {
	return func(u *Unit) {
		u.accessor = fn
	}
}

// WithUnitBinding gives the unit its own binding context instead of the one
// inherited from its Aggregator.
func WithUnitBinding(bc *BindingContext) UnitOption {
	return func(u *Unit) {
		u.binding = bc
	}
}

// WithUnitLogger sets the logger for run diagnostics.
func WithUnitLogger(logger *slog.Logger) UnitOption {
	return func(u *Unit) {
		if logger != nil {
			u.logger = logger
			u.ownLogger = true
		}
	}
}

// Unit is the validation state machine of one field.
//
// A Unit is not safe for concurrent use. All calls, including those made by
// its Aggregator, are expected on a single goroutine.
type Unit struct {
	name          string
	kind          HandlerKind
	handler       Handler
	patternExpr   string
	pattern       *regexp.Regexp
	customMessage string

	accessor  func() any
	binding   *BindingContext
	inherited *BindingContext

	validate      ValidatorFunc
	validateAsync AsyncValidatorFunc
	checker       Checker

	input     Input
	lastValue any
	mode      Mode

	status   Status
	messages []string

	statusChanged listeners[UnitEvent]
	started       listeners[struct{}]
	logger        *slog.Logger
	ownLogger     bool
}

// NewUnit creates the unit for the named field. Configuration errors such as
// an unknown handler kind or a pattern that does not compile are returned
// immediately.
func NewUnit(name string, opts ...UnitOption) (*Unit, error) {
	u := &Unit{
		name:   name,
		kind:   HandlerValidator,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(u)
	}

	if u.patternExpr != "" {
		re, err := regexp.Compile(u.patternExpr)
		if err != nil {
			return nil, errors.Wrapf(errors.Mark(err, ErrInvalidPattern), "field %q", name)
		}
		u.pattern = re
	}

	h, err := NewHandler(u.kind)
	if err != nil {
		return nil, errors.Wrapf(err, "field %q", name)
	}
	u.handler = h

	return u, nil
}

// Name returns the field name.
func (u *Unit) Name() string { return u.name }

// Kind returns the configured handler kind.
func (u *Unit) Kind() HandlerKind { return u.kind }

// Pattern returns the compiled pattern, or nil.
func (u *Unit) Pattern() *regexp.Regexp { return u.pattern }

// Status returns the outcome of the last run.
func (u *Unit) Status() Status { return u.status }

// LastValue returns the value an argument-less run validates.
func (u *Unit) LastValue() any { return u.lastValue }

// Messages returns the unit's messages. A failed unit always exposes at least
// one message; DefaultUnitMessage stands in when the handler supplied none.
func (u *Unit) Messages() []string {
	if u.status == StatusError && len(u.messages) == 0 {
		return []string{DefaultUnitMessage}
	}
	return slices.Clone(u.messages)
}

// Disabled reports whether the bound input is disabled.
func (u *Unit) Disabled() bool {
	return u.input != nil && u.input.Disabled()
}

// FieldBinding returns the model field this unit is bound to.
func (u *Unit) FieldBinding() FieldBinding {
	fb := FieldBinding{ID: FieldIdentifier{Name: u.name}, Accessor: u.accessor}
	if bc := u.bindingContext(); bc != nil {
		fb.ID = bc.Identify(u.name)
	}
	return fb
}

func (u *Unit) bindingContext() *BindingContext {
	if u.binding != nil {
		return u.binding
	}
	return u.inherited
}

// OnStatusChanged registers fn for every status change.
func (u *Unit) OnStatusChanged(fn func(UnitEvent)) *Subscription {
	return u.statusChanged.add(fn)
}

// OnValidationStarted registers fn to run just before each handler run.
func (u *Unit) OnValidationStarted(fn func()) *Subscription {
	return u.started.add(func(struct{}) { fn() })
}

// Initialize binds the unit to its input and seeds the last known value from it.
func (u *Unit) Initialize(input Input) {
	u.input = input
	if input != nil {
		u.lastValue = input.Value()
	}
}

// NotifyValueChanged records value. In ModeAuto an enabled unit validates it
// immediately; in ModeManual the value waits for the next explicit run.
func (u *Unit) NotifyValueChanged(ctx context.Context, value any) error {
	u.lastValue = value
	if u.mode != ModeAuto || u.Disabled() {
		return nil
	}
	_, err := u.ValidateAsync(ctx)
	return err
}

// Validate runs the handler synchronously against the last known value.
func (u *Unit) Validate() (Status, error) {
	return u.run(context.Background(), u.lastValue, false)
}

// ValidateValue runs the handler synchronously against value.
func (u *Unit) ValidateValue(value any) (Status, error) {
	return u.run(context.Background(), value, false)
}

// ValidateAsync runs the handler asynchronously against the last known value.
// If ctx is cancelled before the run completes, the status is left untouched,
// no status change is raised and the context error is returned.
func (u *Unit) ValidateAsync(ctx context.Context) (Status, error) {
	return u.run(ctx, u.lastValue, true)
}

// ValidateValueAsync is ValidateAsync against an explicit value.
func (u *Unit) ValidateValueAsync(ctx context.Context, value any) (Status, error) {
	return u.run(ctx, value, true)
}

func (u *Unit) run(ctx context.Context, value any, async bool) (Status, error) {
	if err := ctx.Err(); err != nil {
		return u.status, err
	}

	u.started.emit(struct{}{})

	var (
		res Result
		err error
	)
	if async {
		res, err = u.handler.ValidateAsync(ctx, u, value)
	} else {
		res, err = u.handler.Validate(u, value)
	}
	if err != nil {
		u.logger.Debug("validation run aborted", "field", u.name, "handler", u.kind, "error", err)
		return u.status, err
	}
	if err := ctx.Err(); err != nil {
		u.logger.Debug("validation run cancelled", "field", u.name, "handler", u.kind)
		return u.status, err
	}

	u.commit(res)
	u.logger.Debug("validation run", "field", u.name, "handler", u.kind, "status", u.status)
	return u.status, nil
}

func (u *Unit) commit(res Result) {
	u.status = res.Status
	u.messages = nil
	if res.Status == StatusError {
		if u.customMessage != "" {
			u.messages = []string{u.customMessage}
		} else {
			u.messages = slices.Clone(res.Messages)
		}
	}
	u.raise()
}

// Clear resets the unit to StatusNone with no messages. It raises a status
// change but no validation start.
func (u *Unit) Clear() {
	u.status = StatusNone
	u.messages = nil
	u.raise()
}

// Report records an outcome decided outside the unit, such as a server-side
// rejection. The messages are stored as given.
func (u *Unit) Report(status Status, messages ...string) {
	u.status = status
	u.messages = nil
	if status == StatusError {
		u.messages = slices.Clone(messages)
	}
	u.raise()
}

func (u *Unit) raise() {
	u.statusChanged.emit(UnitEvent{Status: u.status, Messages: u.Messages()})
}
