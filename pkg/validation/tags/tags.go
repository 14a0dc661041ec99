// Package tags provides a validation.AnnotationSource backed by
// go-playground/validator struct tags.
//
// Struct models are checked field by field with the `validate` tag on the
// struct definition. Models without struct tags, such as the value maps used
// by form definitions, register a tag string per field with WithFieldTag.
// Failures are rendered as English sentences by the validator's translations.
package tags

import (
	"context"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

// LabelTag is the struct tag consulted for a field's display name.
const LabelTag = "label"

type customValidation struct {
	tag     string
	fn      validator.Func
	message string
}

type config struct {
	tagName string
	tags    map[string]string
	labels  map[string]string
	custom  []customValidation
}

// Option configures a Source.
type Option func(*config)

// WithTagName changes the struct tag read for rules. The default is "validate".
func WithTagName(name string) Option {
	return func(c *config) {
		c.tagName = name
	}
}

// WithFieldTag sets the rule string for a field, for example
// "required,email". It takes precedence over struct tags.
func WithFieldTag(field, tag string) Option {
	return func(c *config) {
		c.tags[field] = tag
	}
}

// WithLabel sets the display name used in a field's messages.
func WithLabel(field, label string) Option {
	return func(c *config) {
		c.labels[field] = label
	}
}

// WithValidation registers a custom rule under tag. message is its English
// text; {0} is replaced by the field's label and {1} by the rule parameter.
func WithValidation(tag string, fn validator.Func, message string) Option {
	return func(c *config) {
		c.custom = append(c.custom, customValidation{tag: tag, fn: fn, message: message})
	}
}

// Source reports tag-rule failures for model fields.
type Source struct {
	validate *validator.Validate
	trans    ut.Translator
	tags     map[string]string
	labels   map[string]string
}

var _ validation.AnnotationSource = (*Source)(nil)

// New creates a Source with English messages.
func New(opts ...Option) (*Source, error) {
	cfg := config{
		tagName: "validate",
		tags:    make(map[string]string),
		labels:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(cfg.tagName)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get(LabelTag); label != "" && label != "-" {
			return label
		}
		return f.Name
	})

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator(locale.Locale())
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, errors.Wrap(err, "registering english translations")
	}

	for _, cv := range cfg.custom {
		if err := v.RegisterValidation(cv.tag, cv.fn); err != nil {
			return nil, errors.Wrapf(err, "registering rule %q", cv.tag)
		}
		if err := registerMessage(v, trans, cv.tag, cv.message); err != nil {
			return nil, errors.Wrapf(err, "registering message for rule %q", cv.tag)
		}
	}

	return &Source{
		validate: v,
		trans:    trans,
		tags:     cfg.tags,
		labels:   cfg.labels,
	}, nil
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, message string) error {
	if message == "" {
		message = "{0} is invalid"
	}
	return v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, message, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// FieldErrors validates one field. A registered tag string checks value
// directly; otherwise a struct model is checked for the named field. Fields
// with neither have no rules and yield no messages.
func (s *Source) FieldErrors(ctx context.Context, field validation.FieldIdentifier, value any) ([]string, error) {
	if tag, ok := s.tags[field.Name]; ok {
		err := s.validate.VarCtx(ctx, value, tag)
		return s.messages(field.Name, err)
	}

	if !isStruct(field.Model) {
		return nil, nil
	}
	err := s.validate.StructPartialCtx(ctx, field.Model, field.Name)
	return s.messages(field.Name, err)
}

// HasRules reports whether a tag string is registered for field.
func (s *Source) HasRules(field string) bool {
	_, ok := s.tags[field]
	return ok
}

func (s *Source) messages(name string, err error) ([]string, error) {
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, errors.Wrapf(err, "checking tags for field %q", name)
	}

	label := s.labels[name]
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Translate(s.trans)
		switch {
		case fe.Field() == "":
			// Var checks carry no field name; the message starts after it.
			if label == "" {
				label = name
			}
			msg = label + " " + strings.TrimSpace(msg)
		case label != "":
			msg = strings.Replace(msg, fe.Field(), label, 1)
		}
		out = append(out, msg)
	}
	return out, nil
}

func isStruct(model any) bool {
	if model == nil {
		return false
	}
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
