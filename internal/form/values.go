package form

import (
	"maps"
	"slices"

	"github.com/thoreinstein/fieldcheck/pkg/fileutil"
)

// Values holds the submitted value of each field by name. It is the model
// a built form's annotation fields are bound to.
type Values map[string]any

// LoadValues reads a YAML, JSON or TOML file of field values.
func LoadValues(path string) (Values, error) {
	v := Values{}
	if err := fileutil.DecodeFile(path, (*map[string]any)(&v)); err != nil {
		return nil, err
	}
	return v, nil
}

// Save writes the values to path in the format implied by its extension.
func (v Values) Save(path string) error {
	return fileutil.AtomicWriteEncoded(path, map[string]any(v))
}

// Get returns the named value, or nil.
func (v Values) Get(name string) any {
	return v[name]
}

// Set records the named value.
func (v Values) Set(name string, value any) {
	v[name] = value
}

// Names returns the field names in sorted order.
func (v Values) Names() []string {
	return slices.Sorted(maps.Keys(v))
}
