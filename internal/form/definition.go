package form

import (
	"regexp"
	"slices"
	"strings"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/pkg/validation"
	"github.com/thoreinstein/fieldcheck/pkg/validation/rules"
)

// Definition describes one form.
type Definition struct {
	Name                 string     `yaml:"name" json:"name" toml:"name"`
	Description          string     `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Mode                 string     `yaml:"mode,omitempty" json:"mode,omitempty" toml:"mode,omitempty"`
	ValidateOnAttach     bool       `yaml:"validate_on_attach,omitempty" json:"validate_on_attach,omitempty" toml:"validate_on_attach,omitempty"`
	MissingFieldsMessage string     `yaml:"missing_fields_message,omitempty" json:"missing_fields_message,omitempty" toml:"missing_fields_message,omitempty"`
	Fields               []FieldDef `yaml:"fields" json:"fields" toml:"fields"`

	// Path is the file the definition was loaded from.
	Path string `yaml:"-" json:"-" toml:"-"`
}

// FieldDef describes one field and how it is validated.
type FieldDef struct {
	Name     string   `yaml:"name" json:"name" toml:"name"`
	Label    string   `yaml:"label,omitempty" json:"label,omitempty" toml:"label,omitempty"`
	Handler  string   `yaml:"handler,omitempty" json:"handler,omitempty" toml:"handler,omitempty"`
	Pattern  string   `yaml:"pattern,omitempty" json:"pattern,omitempty" toml:"pattern,omitempty"`
	Message  string   `yaml:"message,omitempty" json:"message,omitempty" toml:"message,omitempty"`
	Rules    []string `yaml:"rules,omitempty" json:"rules,omitempty" toml:"rules,omitempty"`
	Tag      string   `yaml:"tag,omitempty" json:"tag,omitempty" toml:"tag,omitempty"`
	Disabled bool     `yaml:"disabled,omitempty" json:"disabled,omitempty" toml:"disabled,omitempty"`
}

// DisplayName returns the label, or the name when no label is set.
func (f FieldDef) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Kind resolves the field's handler. An empty handler is inferred from the
// other settings: a pattern selects the pattern handler and a tag the
// annotation handler.
func (f FieldDef) Kind() (validation.HandlerKind, error) {
	if f.Handler != "" {
		return validation.ParseHandlerKind(f.Handler)
	}
	switch {
	case f.Pattern != "":
		return validation.HandlerPattern, nil
	case f.Tag != "":
		return validation.HandlerAnnotation, nil
	default:
		return validation.HandlerValidator, nil
	}
}

// Field returns the named field definition.
func (d *Definition) Field(name string) (FieldDef, bool) {
	i := slices.IndexFunc(d.Fields, func(f FieldDef) bool { return f.Name == name })
	if i < 0 {
		return FieldDef{}, false
	}
	return d.Fields[i], true
}

// Validate checks the definition for mistakes Build would otherwise report
// one at a time. Every problem is returned, each marked ErrInvalidForm.
func (d *Definition) Validate() []error {
	var errs []error
	add := func(err error) {
		errs = append(errs, errors.Mark(err, errors.ErrInvalidForm))
	}

	if strings.TrimSpace(d.Name) == "" {
		add(errors.Wrap(errors.ErrMissingName, "form"))
	}
	if d.Mode != "" {
		if _, err := validation.ParseMode(d.Mode); err != nil {
			add(errors.Wrap(err, "mode"))
		}
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if strings.TrimSpace(f.Name) == "" {
			add(errors.Wrapf(errors.ErrMissingName, "fields[%d]", i))
			continue
		}
		if seen[f.Name] {
			add(errors.Newf("field %q: defined more than once", f.Name))
		}
		seen[f.Name] = true

		for _, err := range f.validate() {
			add(errors.Wrapf(err, "field %q", f.Name))
		}
	}
	return errs
}

func (f FieldDef) validate() []error {
	kind, err := f.Kind()
	if err != nil {
		return []error{err}
	}

	var errs []error
	switch kind {
	case validation.HandlerPattern:
		if f.Pattern == "" {
			errs = append(errs, errors.New("pattern handler needs a pattern"))
		} else if _, err := regexp.Compile(f.Pattern); err != nil {
			errs = append(errs, errors.Mark(err, validation.ErrInvalidPattern))
		}
	case validation.HandlerAnnotation:
		if f.Tag == "" {
			errs = append(errs, errors.New("annotation handler needs a tag"))
		}
	case validation.HandlerValidator:
		if _, err := rules.ParseAll(f.Rules); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
