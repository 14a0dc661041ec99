package form

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/pkg/validation"
	"github.com/thoreinstein/fieldcheck/pkg/validation/rules"
	"github.com/thoreinstein/fieldcheck/pkg/validation/tags"
)

// Form is a definition bound to a set of values.
type Form struct {
	Definition *Definition
	Aggregator *validation.Aggregator
	Values     Values
	// Store collects the annotation handler's messages per field.
	Store *validation.MemoryStore
}

type buildOptions struct {
	mode     *validation.Mode
	fallMode *validation.Mode
	logger   *slog.Logger
	fallback string
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithMode overrides the definition's mode.
func WithMode(mode validation.Mode) BuildOption {
	return func(o *buildOptions) {
		o.mode = &mode
	}
}

// WithDefaultMode sets the mode used when the definition does not name one.
func WithDefaultMode(mode validation.Mode) BuildOption {
	return func(o *buildOptions) {
		o.fallMode = &mode
	}
}

// WithLogger sets the logger handed to the aggregator.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// WithDefaultMissingFieldsMessage sets the message used when the definition
// does not name one.
func WithDefaultMissingFieldsMessage(msg string) BuildOption {
	return func(o *buildOptions) {
		o.fallback = msg
	}
}

// Build creates an aggregator with one unit per field, each reading its
// value from values. The units are attached in definition order; with
// validate_on_attach in auto mode they are validated as they attach, which
// is why values must be complete before Build is called.
func Build(ctx context.Context, def *Definition, values Values, opts ...BuildOption) (*Form, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	if values == nil {
		values = Values{}
	}

	mode := validation.ModeAuto
	if o.fallMode != nil {
		mode = *o.fallMode
	}
	if def.Mode != "" {
		m, err := validation.ParseMode(def.Mode)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "form %q", def.Name), errors.ErrInvalidForm)
		}
		mode = m
	}
	if o.mode != nil {
		mode = *o.mode
	}

	source, err := tagSource(def)
	if err != nil {
		return nil, err
	}

	missing := def.MissingFieldsMessage
	if missing == "" {
		missing = o.fallback
	}

	store := validation.NewMemoryStore()
	aggOpts := []validation.Option{
		validation.WithMode(mode),
		validation.WithValidateOnAttach(def.ValidateOnAttach),
		validation.WithMissingFieldsMessage(missing),
		validation.WithModel(values),
		validation.WithAnnotationSource(source),
		validation.WithErrorStore(store),
	}
	if o.logger != nil {
		aggOpts = append(aggOpts, validation.WithLogger(o.logger.With("form", def.Name)))
	}
	agg, err := validation.New(aggOpts...)
	if err != nil {
		return nil, err
	}

	f := &Form{Definition: def, Aggregator: agg, Values: values, Store: store}
	for _, fd := range def.Fields {
		u, err := newUnit(fd, values)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "form %q", def.Name), errors.ErrInvalidForm)
		}
		if err := agg.Attach(ctx, u); err != nil {
			return nil, errors.Wrapf(err, "form %q", def.Name)
		}
	}
	return f, nil
}

// tagSource builds the annotation source for the definition's tag fields.
func tagSource(def *Definition) (*tags.Source, error) {
	var opts []tags.Option
	for _, fd := range def.Fields {
		if fd.Tag == "" {
			continue
		}
		opts = append(opts, tags.WithFieldTag(fd.Name, fd.Tag), tags.WithLabel(fd.Name, fd.DisplayName()))
	}
	src, err := tags.New(opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "form %q", def.Name)
	}
	return src, nil
}

func newUnit(fd FieldDef, values Values) (*validation.Unit, error) {
	kind, err := fd.Kind()
	if err != nil {
		return nil, errors.Wrapf(err, "field %q", fd.Name)
	}

	name := fd.Name
	opts := []validation.UnitOption{
		validation.WithHandler(kind),
		validation.WithAccessor(func() any { return values.Get(name) }),
	}
	if fd.Message != "" {
		opts = append(opts, validation.WithCustomMessage(fd.Message))
	}

	switch kind {
	case validation.HandlerPattern:
		opts = append(opts, validation.WithPattern(fd.Pattern))
	case validation.HandlerValidator:
		rs, err := rules.ParseAll(fd.Rules)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", fd.Name)
		}
		if len(rs) > 0 {
			c := rules.All(rs...)
			opts = append(opts,
				validation.WithValidator(c.Validator()),
				validation.WithAsyncValidator(c.AsyncValidator()),
			)
		}
	}

	u, err := validation.NewUnit(name, opts...)
	if err != nil {
		return nil, err
	}

	disabled := fd.Disabled
	u.Initialize(validation.NewInput(
		func() any { return values.Get(name) },
		func() bool { return disabled },
	))
	return u, nil
}

// Set records a new value for the named field and notifies its unit, which
// validates it straight away in auto mode.
func (f *Form) Set(ctx context.Context, name string, value any) error {
	u := f.Aggregator.Unit(name)
	if u == nil {
		return errors.Wrapf(errors.ErrNotFound, "field %q", name)
	}
	f.Values.Set(name, value)
	return u.NotifyValueChanged(ctx, value)
}

// Failed returns the names of the fields currently in error, in definition
// order.
func (f *Form) Failed() []string {
	var out []string
	for _, u := range f.Aggregator.Units() {
		if u.Status() == validation.StatusError {
			out = append(out, u.Name())
		}
	}
	return out
}
